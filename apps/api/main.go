package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
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
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	sqlxDB := sqlxrepos.Wrap(db)

	// set up repositories
	userRepo := sqlxrepos.NewUserRepository(sqlxDB)
	studentRepo := sqlxrepos.NewStudentRepository(sqlxDB)
	employeeRepo := sqlxrepos.NewEmployeeRepository(sqlxDB)
	subjectRepo := sqlxrepos.NewSubjectRepository(sqlxDB)
	classRepo := sqlxrepos.NewClassRepository(sqlxDB)
	groupRepo := sqlxrepos.NewGroupRepository(sqlxDB)
	clientRepo := sqlxrepos.NewClientRepository(sqlxDB)
	attendanceRepo := sqlxrepos.NewAttendanceRepository(sqlxDB)
	assessmentRepo := sqlxrepos.NewAssessmentRepository(sqlxDB)
	marksRepo := sqlxrepos.NewMarksRepository(sqlxDB)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	usrSvc := user.NewService(userRepo, mailSvc, conf)
	subjectSvc := subject.NewService(subjectRepo)
	classSvc := schoolclass.NewService(classRepo)
	clientSvc := client.NewService(clientRepo)

	// students and groups reference each other; the group Lookup keeps
	// construction acyclic.
	studentSvc := student.NewService(studentRepo, usrSvc, group.NewLookup(groupRepo))
	groupSvc := group.NewService(groupRepo, subjectSvc, studentSvc)
	employeeSvc := employee.NewService(employeeRepo, usrSvc)
	attendanceSvc := attendance.NewService(attendanceRepo, employeeSvc, groupSvc, studentSvc)
	assessmentSvc := assessment.NewService(assessmentRepo, subjectSvc)
	marksSvc := marks.NewService(marksRepo, assessmentSvc, subjectSvc, studentSvc)

	revoked := inmemdb.NewRevocationStore()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger)

	user.LoadCommonPasswords(logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Revoked:       revoked,
			UserSvc:       usrSvc,
			StudentSvc:    studentSvc,
			EmployeeSvc:   employeeSvc,
			SubjectSvc:    subjectSvc,
			ClassSvc:      classSvc,
			GroupSvc:      groupSvc,
			ClientSvc:     clientSvc,
			AttendanceSvc: attendanceSvc,
			AssessmentSvc: assessmentSvc,
			MarksSvc:      marksSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
