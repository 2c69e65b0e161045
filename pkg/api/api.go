package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Api struct {
	router *mux.Router
	srv    *http.Server
}

func NewApi(listenAddr string) *Api {
	// unclean paths such as //read must not be redirected to a known route
	router := mux.NewRouter().SkipClean(true)
	notFound := requestLogger(http.HandlerFunc(handleNotFound))
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound

	return &Api{
		router: router,
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (api *Api) RegisterHandler(path string, methods []string, handler func(http.ResponseWriter, *http.Request)) {
	api.router.
		Path(path).
		HandlerFunc(handler).
		Methods(methods...)
}

func (api *Api) RegisterMiddlewareFuncs(middlewareFunc ...mux.MiddlewareFunc) {
	api.router.Use(middlewareFunc...)
}

func (api *Api) Handler() http.Handler {
	return api.router
}

func (api *Api) Start() error {
	log.Infof("volume probe api listens on %s", api.srv.Addr)
	if err := api.listen(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (api *Api) Shutdown(ctx context.Context) error {
	log.Info("shutting down volume probe api")
	return api.srv.Shutdown(ctx)
}

func (api *Api) listen() error {
	socketParts := strings.Split(api.srv.Addr, "unix://")
	if len(socketParts) <= 1 {
		return api.listenOnPort()
	}

	return api.listenOnUnixSocket(socketParts[1])
}

func (api *Api) listenOnUnixSocket(socketFile string) error {
	socketDir := path.Dir(socketFile)
	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to prepare folder for socket-file")
	}
	conn, err := net.Listen("unix", socketFile)
	if err != nil {
		return err
	}
	return api.srv.Serve(conn)
}

func (api *Api) listenOnPort() error {
	return api.srv.ListenAndServe()
}
