// qrgen-server serves the M3 data logger QR generation API.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/httpx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"
	"gopkg.in/yaml.v3"

	"github.com/m3-datalogger/qrgen/handler"
	"github.com/m3-datalogger/qrgen/logging"
	"github.com/m3-datalogger/qrgen/payload"
)

var (
	listenAddr = flag.String("addr", ":8000", "The address and port to use for the qrgen API")
	limitsFile = flag.String("limits", "", "Optional YAML file overriding the payload field limits")

	// Context for the whole program.
	ctx, cancel = context.WithCancel(context.Background())
)

// loadLimits returns the scanner's default limits, overridden by the
// YAML file at path when one is given.
func loadLimits(path string) (payload.Limits, error) {
	limits := payload.DefaultLimits()
	if path == "" {
		return limits, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return limits, err
	}
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return limits, err
	}
	return limits, nil
}

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "Could not get args from env")
	defer cancel()

	limits, err := loadLimits(*limitsFile)
	rtx.Must(err, "Could not load payload limits from %q", *limitsFile)

	promSrv := prometheusx.MustServeMetrics()
	defer promSrv.Close()

	router := mux.NewRouter()
	handler.New(limits).Register(router)

	srv := &http.Server{
		Addr:    *listenAddr,
		Handler: logging.MakeAccessLogHandler(router),
	}
	rtx.Must(httpx.ListenAndServeAsync(srv), "Could not start qrgen API server")
	defer srv.Close()
	logging.Logger.WithField("addr", srv.Addr).Info("qrgen-server listening")

	// Serve until the context is canceled.
	<-ctx.Done()
}
