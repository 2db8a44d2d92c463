package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pkg/browser"

	"codesync/internal/engine"
	"codesync/internal/engine/opts"
	"codesync/internal/web"
)

func serveCmd(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port = fs.Int("p", 8080, "port")
		repo = fs.String("repo", ".", "scan root")
		open = fs.Bool("open", false, "open the UI in the default browser")
	)
	_ = fs.Parse(args)

	mux := http.NewServeMux()
	web.Register(mux)
	mux.HandleFunc("/api/check", apiCheckHandler(*repo))

	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("codesync serve listening on %s (repo=%s)", addr, mustAbs(*repo))
	if *open {
		go func() {
			url := fmt.Sprintf("http://localhost:%d/", *port)
			if err := browser.OpenURL(url); err != nil {
				log.Printf("open browser: %v", err)
			}
		}()
	}
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "codesync: %v\n", err)
		return exitError
	}
	return exitOK
}

func apiCheckHandler(repoDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := opts.ApplyWebQueryToOptions(opts.Defaults(repoDir), r.URL.Query())
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, err)
			return
		}
		if err := opts.NormalizeAndValidate(&o); err != nil {
			writeAPIError(w, http.StatusBadRequest, err)
			return
		}
		o.Progress = false

		res, err := engine.Run(o)
		if err != nil {
			writeAPIError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		_ = json.NewEncoder(w).Encode(apiCheckResponse(res))
	}
}

type checkResponse struct {
	Clean         bool           `json:"clean"`
	Issues        []engine.Issue `json:"issues"`
	TotalComments int            `json:"total_comments"`
	TotalLabels   int            `json:"total_labels"`
	FilesScanned  int            `json:"files_scanned"`
	ElapsedMS     int64          `json:"elapsed_ms"`
	ErrorCount    int            `json:"error_count"`
}

func apiCheckResponse(res *engine.Result) checkResponse {
	issues := res.Issues
	if issues == nil {
		issues = []engine.Issue{}
	}
	return checkResponse{
		Clean:         res.Clean(),
		Issues:        issues,
		TotalComments: res.TotalComments,
		TotalLabels:   res.TotalLabels,
		FilesScanned:  res.FilesScanned,
		ElapsedMS:     res.ElapsedMS,
		ErrorCount:    res.ErrorCount,
	}
}

func writeAPIError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
