package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/alittlebrighter/rcswitch"
)

// maxCommandBody bounds what POST /command reads; commands are 7 characters.
const maxCommandBody = 256

var ServeCommand = cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server and the message bus listener",
	Action: serveCommand,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "serve-at, s",
			Usage: "Address to listen on, overrides the configuration",
		},
		cli.StringFlag{
			Name:  "docroot, D",
			Usage: "Document root of the web interface, overrides the configuration",
		},
	},
}

func serveCommand(ctx *cli.Context) error {
	sw, cleanup, err := openSwitch(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	config := sw.Config()
	if addr := ctx.String("serve-at"); addr != "" {
		config.ServeAt = addr
	}
	if docRoot := ctx.String("docroot"); docRoot != "" {
		config.DocRoot = docRoot
	}

	appCtx := newAppContext(sw, config.DocRoot)
	sw.OnEvent(appCtx.hub.broadcast)

	bus, err := connectBus(config.NATS)
	if err != nil {
		logrus.WithError(err).Warn("could not connect to message bus, continuing without it")
	}
	if bus != nil {
		defer bus.Close()
		sw.OnEvent(bus.publish)
	}

	appCtx.control = rcswitch.NewControl(sw)
	defer appCtx.control.Close()

	if bus != nil {
		if err := bus.subscribe(appCtx.control); err != nil {
			return err
		}
	}

	server := &http.Server{Addr: config.ServeAt, Handler: CORSFilter(appCtx.router())}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logrus.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logrus.Info("Starting web server at " + config.ServeAt)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type appContext struct {
	sw      *rcswitch.Switch
	control *rcswitch.Control
	hub     *hub
	docRoot string
}

func newAppContext(sw *rcswitch.Switch, docRoot string) *appContext {
	return &appContext{sw: sw, hub: newHub(), docRoot: docRoot}
}

func (appCtx *appContext) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/switch/{address}/{channel}", appCtx.switchHandler).Methods(http.MethodPost)
	r.HandleFunc("/command", appCtx.commandHandler).Methods(http.MethodPost)
	r.HandleFunc("/power", appCtx.powerHandler).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/events", appCtx.eventsHandler).Methods(http.MethodGet)
	r.HandleFunc("/events/ws", appCtx.hub.serveWS).Methods(http.MethodGet)

	if appCtx.docRoot != "" {
		r.PathPrefix("/").Handler(http.FileServer(webRoot{http.Dir(appCtx.docRoot)})).Methods(http.MethodGet)
	}

	return r
}

// webRoot serves the web interface. Directories are only reachable through
// their index.html and are never listed.
type webRoot struct {
	fs http.FileSystem
}

func (root webRoot) Open(name string) (http.File, error) {
	f, err := root.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		index, err := root.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, os.ErrNotExist
		}
		index.Close()
	}

	return f, nil
}

func (appCtx *appContext) switchHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	state := r.FormValue("state")
	if state == "" {
		logrus.Error("Missing parameter: state")
		http.Error(w, "Missing parameter: state", http.StatusBadRequest)
		return
	}

	raw, err := rcswitch.BuildCommand(vars["address"], vars["channel"], state)
	if err != nil {
		logrus.WithError(err).Warn("rejected switch request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !appCtx.enqueue(w, raw) {
		return
	}
	fmt.Fprintf(w, "State set to: %s", state)
}

func (appCtx *appContext) commandHandler(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxCommandBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	if _, err := rcswitch.ParseCommand(string(body)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !appCtx.enqueue(w, string(body)) {
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (appCtx *appContext) enqueue(w http.ResponseWriter, raw string) bool {
	logrus.WithField("command", raw).Info("queueing command")
	if _, err := appCtx.control.WriteString(raw); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return false
	}
	return true
}

type powerResponse struct {
	Power rcswitch.State `json:"power"`
}

func (appCtx *appContext) powerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		state, err := rcswitch.ParseState(r.FormValue("state"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		appCtx.sw.SetPower(bool(state))
	}

	writeJSON(w, powerResponse{Power: rcswitch.State(appCtx.sw.Power())})
}

func (appCtx *appContext) eventsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, appCtx.sw.Events.GetAll())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("could not encode response")
	}
}

// CORSFilter allows the web interface to be served from another origin.
func CORSFilter(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Methods", "GET,POST")
		w.Header().Add("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}
