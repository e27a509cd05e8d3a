package api

import (
	"errors"
	"net"
	"net/http"
	"net/rpc"
	"os"
	"strings"
	"time"

	"github.com/tauraamui/gridwatch/common"
	"github.com/tauraamui/gridwatch/pkg/api/auth"
	"github.com/tauraamui/gridwatch/pkg/database"
	"github.com/tauraamui/gridwatch/pkg/database/dbconn"
	"github.com/tauraamui/gridwatch/pkg/database/repos"
	"github.com/tauraamui/gridwatch/pkg/gridwatch"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/xerror"
)

func init() {
	rpc.Register(Session{})
}

const SIGREMOTE = Signal(0x1)

type Signal int

func (s Signal) Signal() {}

func (s Signal) String() string {
	return "remote-shutdown"
}

type Options struct {
	RPCListenPort string
	SigningSecret string
}

type Session struct {
	Token      string
	CameraUUID string
}

func (s Session) GetToken(args string, resp *string) error {
	*resp = s.Token
	return nil
}

type GridServer struct {
	interrupt     chan os.Signal
	s             *gridwatch.Server
	httpServer    *http.Server
	rpcListenPort string
	signingSecret string
	db            dbconn.GormWrapper
}

func New(interrupt chan os.Signal, server *gridwatch.Server, opts Options) (*GridServer, error) {
	db, err := database.Connect()
	if err != nil {
		return nil, xerror.Errorf("unable to connect to DB, try running the setup: %w", err)
	}
	return &GridServer{
		interrupt:     interrupt,
		s:             server,
		httpServer:    &http.Server{},
		rpcListenPort: opts.RPCListenPort,
		signingSecret: opts.SigningSecret,
		db:            db,
	}, nil
}

func StartRPC(g *GridServer) error {
	err := rpc.Register(g)
	if err != nil {
		return err
	}
	rpc.HandleHTTP()

	l, err := net.Listen("tcp", g.rpcListenPort)
	if err != nil {
		return err
	}

	errs := make(chan error)
	go func() {
		httpErr := g.httpServer.Serve(l)
		if httpErr != nil {
			errs <- httpErr
		}
		errs <- nil
	}()

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func ShutdownRPC(g *GridServer) error {
	if g != nil && g.httpServer != nil {
		return g.httpServer.Close()
	}
	return errors.New("API server not running")
}

func (g *GridServer) Authenticate(authContents string, resp *string) error {
	usernameAndPassword, err := validateAuth(authContents)
	if err != nil {
		return err
	}

	username := usernameAndPassword[0]
	password := usernameAndPassword[1]

	userRepo := repos.UserRepository{DB: g.db}
	if err := userRepo.Authenticate(username, password); err != nil {
		return err
	}

	user, err := userRepo.FindByName(username)
	if err != nil {
		return err
	}

	token, err := auth.GenToken(g.signingSecret, user.UUID)
	if err != nil {
		return err
	}

	*resp = token
	return nil
}

// Exposed API
func (g *GridServer) ActiveConnections(sess *Session, resp *[]common.ConnectionData) error {
	err := g.validateSession(*sess)
	if err != nil {
		return err
	}
	*resp = g.s.APIFetchActiveConnections()
	return nil
}

// LatestGrid serves the most recently analysed grid for the camera named
// by the session. Falls back to the last persisted snapshot when the
// camera has not produced a result since startup.
func (g *GridServer) LatestGrid(sess *Session, resp *common.GridData) error {
	err := g.validateSession(*sess)
	if err != nil {
		return err
	}

	data, err := g.s.APIFetchLatestGrid(sess.CameraUUID)
	if err == nil {
		*resp = data
		return nil
	}

	snapshotRepo := repos.SnapshotRepository{DB: g.db}
	snapshot, repoErr := snapshotRepo.FindLatestByCamera(sess.CameraUUID)
	if repoErr != nil {
		return err
	}

	*resp = common.GridData{
		CameraUUID:  snapshot.CameraUUID,
		CameraTitle: snapshot.CameraTitle,
		Rows:        snapshot.Rows,
		Columns:     snapshot.Columns,
		Cells:       snapshot.Matrix(),
		BrightCells: snapshot.BrightCells,
		CapturedAt:  snapshot.CapturedAt,
	}
	return nil
}

func (g *GridServer) Shutdown(sess *Session, resp *bool) error {
	err := g.validateSession(*sess)
	if err != nil {
		return err
	}

	*resp = true
	log.Warn("Received remote shutdown request...")
	defer func() {
		time.Sleep(time.Second * 1)
		g.interrupt <- SIGREMOTE
	}()
	return nil
}

func (g *GridServer) validateSession(sess Session) error {
	if _, err := auth.ValidateToken(g.signingSecret, sess.Token); err != nil {
		return xerror.Errorf("user must be authenticated: %w", err)
	}
	return nil
}

func validateAuth(auth string) ([]string, error) {
	if len(auth) == 0 {
		return nil, errors.New("cannot retrieve username and password from blank input")
	}

	split := strings.Split(auth, "|")
	if len(split) <= 1 {
		return nil, errors.New("unable to correctly retrieve username and password from malformed input")
	}

	return split, nil
}
