package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/songtask/analysis"
	"github.com/jsphweid/songtask/constants"
	"github.com/jsphweid/songtask/midi"
	"github.com/jsphweid/songtask/model"
	"github.com/jsphweid/songtask/report"
	"github.com/jsphweid/songtask/transform"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var listenAddr string

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves analyze and change over HTTP",
	Long: `Serves two endpoints that take a MIDI file as the request body:

  POST /analyze?lyrics=true        JSON report
  POST /change?trans=N&tempo=T     the changed MIDI file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		addr := cfg.Listen
		if listenAddr != "" {
			addr = listenAddr
		}
		return serve(addr)
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func readSong(w http.ResponseWriter, r *http.Request) (*model.Song, bool) {
	song, err := midi.Decode(http.MaxBytesReader(w, r.Body, constants.MaxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return song, true
}

func boolQuery(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	lyrics, err := boolQuery(r, "lyrics")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	song, ok := readSong(w, r)
	if !ok {
		return
	}

	res, err := newAnalyzer().Song(song, analysis.Options{
		MatchLyrics:   lyrics,
		Reconstructor: newReconstructor(),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := report.Write(w, res, report.FormatJSON); err != nil {
		logger.Error("failed to write report", "err", err)
	}
}

func parseChangeRequest(r *http.Request) (transform.Request, error) {
	var req transform.Request
	q := r.URL.Query()
	if v := q.Get("trans"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, err
		}
		req.Semitones = n
	}
	if v := q.Get("tempo"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, err
		}
		req.TempoPercent = f
	}
	if req.TempoPercent <= -100 {
		return req, errTempoTooLow
	}
	return req, nil
}

func HandleChange(w http.ResponseWriter, r *http.Request) {
	req, err := parseChangeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	song, ok := readSong(w, r)
	if !ok {
		return
	}
	policy, err := cfg.Policy()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	changed := transform.New(logger).Change(song, req)
	if err := midi.Encode(&buf, changed, policy); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, midi.ErrPitchOutOfRange) || errors.Is(err, midi.ErrTempoOutOfRange) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("handled request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/change", HandleChange).Methods("POST")
	router.Use(withRequestID)
	return cors.Default().Handler(router)
}

func serve(addr string) error {
	logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, NewRouter())
}
