package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/client"
	"github.com/trezcool/darasa/core/employee"
	"github.com/trezcool/darasa/core/group"
	"github.com/trezcool/darasa/core/marks"
	"github.com/trezcool/darasa/core/schoolclass"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/subject"
	"github.com/trezcool/darasa/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		Revoked user.RevocationStore

		UserSvc       user.Service
		StudentSvc    student.Service
		EmployeeSvc   employee.Service
		SubjectSvc    subject.Service
		ClassSvc      schoolclass.Service
		GroupSvc      group.Service
		ClientSvc     client.Service
		AttendanceSvc attendance.Service
		AssessmentSvc assessment.Service
		MarksSvc      marks.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps         ServerDeps
		app          *echo.Echo
		errChan      chan error
		shutdownChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	initAuth(deps.Conf)

	s := &server{
		deps:         deps,
		app:          echo.New(),
		errChan:      make(chan error, 1),
		shutdownChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownChan, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	auth := []echo.MiddlewareFunc{
		middleware.JWTWithConfig(appJWTConfig),
		notRevokedMiddleware(s.deps.Revoked),
	}

	registerUserAPI(v1, auth, s.deps.UserSvc, s.deps.Revoked, s.deps.Validate)
	registerStudentAPI(v1, auth, s.deps.StudentSvc, s.deps.Validate)
	registerEmployeeAPI(v1, auth, s.deps.EmployeeSvc, s.deps.Validate)
	registerSubjectAPI(v1, auth, s.deps.SubjectSvc, s.deps.Validate)
	registerClassAPI(v1, auth, s.deps.ClassSvc, s.deps.Validate)
	registerGroupAPI(v1, auth, s.deps.GroupSvc, s.deps.Validate)
	registerClientAPI(v1, auth, s.deps.ClientSvc, s.deps.Validate)
	registerAttendanceAPI(v1, auth, s.deps.AttendanceSvc, s.deps.Validate)
	registerAssessmentAPI(v1, auth, s.deps.AssessmentSvc, s.deps.Validate)
	registerMarksAPI(v1, auth, s.deps.MarksSvc, s.deps.Validate)
}

func (s *server) Start() {
	s.errChan <- s.app.Start(s.deps.Conf.Server.Address())
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownChan
}

func (s *server) signalShutdown() {
	s.shutdownChan <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa API!")
}
