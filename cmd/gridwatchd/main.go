package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/takama/daemon"
	"github.com/tauraamui/gridwatch/pkg/api"
	"github.com/tauraamui/gridwatch/pkg/config"
	"github.com/tauraamui/gridwatch/pkg/configdef"
	db "github.com/tauraamui/gridwatch/pkg/database"
	"github.com/tauraamui/gridwatch/pkg/gridwatch"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/gridwatch/pkg/videobackend"
	"gocv.io/x/gocv"
)

const (
	name        = "gridwatch_daemon"
	description = "Gridwatch service daemon which converts camera streams into luminance grids"
)

type Service struct {
	daemon.Daemon
}

// Setup will setup local DB and ask for root admin credentials
func (service *Service) Setup() (string, error) {
	log.Info("Setting up gridwatch service...")

	err := config.DefaultCreator().Create()
	if err != nil {
		if !errors.Is(err, configdef.ErrConfigAlreadyExists) {
			return "", err
		}
		log.Error(err.Error())
	}

	err = db.Setup()
	if err != nil {
		if !errors.Is(err, db.ErrDBAlreadyExists) {
			return "", err
		}
		log.Error(err.Error())
	}

	return "Setup successful...", nil
}

func (service *Service) RemoveSetup() (string, error) {
	log.Info("Removing setup for gridwatch service...")
	err := db.Destroy()
	if err != nil {
		log.Error("unable to delete database file: %s", err.Error())
	}

	return "Removing setup successful...", nil
}

func (service *Service) Manage() (string, error) {
	usage := "Usage: gridwatchd setup | remove-setup | install | remove | start | stop | status"

	if len(os.Args) > 1 {
		command := os.Args[1]
		switch command {
		case "setup":
			return service.Setup()
		case "remove-setup":
			return service.RemoveSetup()
		case "install":
			return service.Install()
		case "remove":
			return service.Remove()
		case "start":
			return service.Start()
		case "stop":
			return service.Stop()
		case "status":
			return service.Status()
		default:
			return usage, nil
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	log.Info("Starting gridwatch daemon...")

	server, err := gridwatch.NewServer(config.DefaultResolver(), videobackend.Resolve(os.Getenv("GRIDWATCH_VIDEO_BACKEND")))
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := server.LoadConfiguration(); err != nil {
		log.Fatal(err.Error())
	}

	if conn, err := db.Connect(); err != nil {
		log.Error("snapshot persistence disabled, unable to connect to DB: %s", err.Error())
	} else {
		server.AttachSnapshotStore(conn)
	}

	apiServer := startAPIServer(interrupt, server)

	ctx, cancelStartup := context.WithCancel(context.Background())
	go startupServer(ctx, server)

	killSignal := <-interrupt
	fmt.Print("\r")
	log.Error("Received signal: %s", killSignal)

	cancelStartup()
	if apiServer != nil {
		if err := api.ShutdownRPC(apiServer); err != nil {
			log.Error(err.Error())
		}
	}
	log.Info("Shutting down server...")
	<-server.Shutdown()

	var b bytes.Buffer
	gocv.MatProfile.Count()
	gocv.MatProfile.WriteTo(&b, 1)
	fmt.Print(b.String())

	return "Shutdown successful... BYE! 👋", nil
}

func startAPIServer(interrupt chan os.Signal, server *gridwatch.Server) *api.GridServer {
	cfg, err := config.DefaultResolver().Resolve()
	if err != nil {
		log.Error("remote API disabled: %s", err.Error())
		return nil
	}

	apiServer, err := api.New(interrupt, server, api.Options{
		RPCListenPort: cfg.RPCListenPort,
		SigningSecret: cfg.Secret,
	})
	if err != nil {
		log.Error("remote API disabled: %s", err.Error())
		return nil
	}

	if err := api.StartRPC(apiServer); err != nil {
		log.Error("remote API disabled: %s", err.Error())
		return nil
	}

	log.Info("Remote API listening on %s", cfg.RPCListenPort)
	return apiServer
}

func startupServer(ctx context.Context, server *gridwatch.Server) {
	connectToCameras(ctx, server)
	server.SetupProcesses()
	server.RunProcesses()
}

func connectToCameras(ctx context.Context, server *gridwatch.Server) {
	errs := server.ConnectWithCancel(ctx)
	for _, err := range errs {
		log.Error(err.Error())
	}
}

func init() {
	logging.CallbackLabelLevel = 5
	logging.ColorLogLevelLabelOnly = true
	loggingLevel := os.Getenv("GRIDWATCH_LOGGING_LEVEL")

	switch strings.ToLower(loggingLevel) {
	case "info":
		logging.CurrentLoggingLevel = logging.InfoLevel
	case "warn":
		logging.CurrentLoggingLevel = logging.WarnLevel
	case "debug":
		logging.CurrentLoggingLevel = logging.DebugLevel
		logging.CallbackLabel = true
	default:
		logging.CurrentLoggingLevel = logging.WarnLevel
	}
}

func main() {
	daemonType := daemon.SystemDaemon
	if runtime.GOOS == "darwin" {
		daemonType = daemon.UserAgent
	}

	srv, err := daemon.New(name, description, daemonType)
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	service := &Service{srv}
	status, err := service.Manage()
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	logging.Info(status) //nolint
}
