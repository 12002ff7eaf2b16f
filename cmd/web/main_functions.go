package main

import (
	"log"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-supplydemand/internal/watcher"
)

var Prof *prof.Profiler

// startProfiler serves pprof on addr, debug mode only
func startProfiler(addr string) {
	if addr == "" {
		return
	}
	Prof = prof.NewProf()
	go Prof.PprofWeb(addr)
	log.Printf("[PROF]: pprof web listening on %s", addr)
}

// startTemplateWatcher logs template edits; a missing dir only disables the watcher
func startTemplateWatcher(dir string) *watcher.Watcher {
	w, err := watcher.New(dir, func(path string) {
		log.Printf("[WATCH]: Template changed: %s (served on next request)", path)
	})
	if err != nil {
		log.Printf("[WATCH]: Warning: Not watching templates in %s: %v", dir, err)
		return nil
	}
	log.Printf("[WATCH]: Watching templates in %s", w.Dir())
	return w
}
