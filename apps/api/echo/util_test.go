package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

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
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testEnv struct {
	app Server

	usrRepo        user.Repository
	studentRepo    student.Repository
	subjectRepo    subject.Repository
	assessmentRepo assessment.Repository
	marksRepo      marks.Repository

	usrSvc        user.Service
	studentSvc    student.Service
	subjectSvc    subject.Service
	assessmentSvc assessment.Service
	marksSvc      marks.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed, %v", err)
	}

	usrRepo := inmemdb.NewUserRepository(db)
	studentRepo := inmemdb.NewStudentRepository(db)
	employeeRepo := inmemdb.NewEmployeeRepository(db)
	subjectRepo := inmemdb.NewSubjectRepository(db)
	classRepo := inmemdb.NewClassRepository(db)
	groupRepo := inmemdb.NewGroupRepository(db)
	clientRepo := inmemdb.NewClientRepository(db)
	attendanceRepo := inmemdb.NewAttendanceRepository(db)
	assessmentRepo := inmemdb.NewAssessmentRepository(db)
	marksRepo := inmemdb.NewMarksRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	subjectSvc := subject.NewService(subjectRepo)
	classSvc := schoolclass.NewService(classRepo)
	clientSvc := client.NewService(clientRepo)
	studentSvc := student.NewService(studentRepo, usrSvc, group.NewLookup(groupRepo))
	groupSvc := group.NewService(groupRepo, subjectSvc, studentSvc)
	employeeSvc := employee.NewService(employeeRepo, usrSvc)
	attendanceSvc := attendance.NewService(attendanceRepo, employeeSvc, groupSvc, studentSvc)
	assessmentSvc := assessment.NewService(assessmentRepo, subjectSvc)
	marksSvc := marks.NewService(marksRepo, assessmentSvc, subjectSvc, studentSvc)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger)

	app := NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         logger,
			DisableReqLogs: true,
			Revoked:        inmemdb.NewRevocationStore(),
			UserSvc:        usrSvc,
			StudentSvc:     studentSvc,
			EmployeeSvc:    employeeSvc,
			SubjectSvc:     subjectSvc,
			ClassSvc:       classSvc,
			GroupSvc:       groupSvc,
			ClientSvc:      clientSvc,
			AttendanceSvc:  attendanceSvc,
			AssessmentSvc:  assessmentSvc,
			MarksSvc:       marksSvc,
			Validate:       validate,
			Translator:     translator,
		},
	)

	return &testEnv{
		app:            app,
		usrRepo:        usrRepo,
		studentRepo:    studentRepo,
		subjectRepo:    subjectRepo,
		assessmentRepo: assessmentRepo,
		marksRepo:      marksRepo,
		usrSvc:         usrSvc,
		studentSvc:     studentSvc,
		subjectSvc:     subjectSvc,
		assessmentSvc:  assessmentSvc,
		marksSvc:       marksSvc,
	}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// Fixtures

func (env *testEnv) createUser(t *testing.T, name, uname, email, pwd string, roles []string, isActive bool) user.User {
	t.Helper()

	usr := user.User{
		Name:     name,
		Username: uname,
		Email:    email,
		Roles:    roles,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed, %v", err)
		}
	}
	usr, err := env.usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	return usr
}

func (env *testEnv) createSubject(t *testing.T, subjectID, name string) subject.Subject {
	t.Helper()

	sub, err := env.subjectRepo.CreateSubject(context.Background(), subject.Subject{
		SubjectID: subjectID,
		Name:      name,
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed, %v", err)
	}
	return sub
}

func (env *testEnv) createStudent(t *testing.T, fullName string) student.Student {
	t.Helper()

	usr := env.createUser(t, fullName, fullName, fullName+"@test.cd", "", []string{user.RoleStudent}, true)
	std, err := env.studentRepo.CreateStudent(context.Background(), student.Student{
		UserID:   usr.ID,
		FullName: fullName,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed, %v", err)
	}
	return std
}

func (env *testEnv) createComponent(t *testing.T, componentID, subjectID string, maxScore float64, contribution assessment.Percent) assessment.Component {
	t.Helper()

	comp, err := env.assessmentSvc.Create(context.Background(), assessment.NewComponent{
		ComponentID:  componentID,
		SubjectID:    subjectID,
		Kind:         "assignment",
		MaxScore:     maxScore,
		Contribution: contribution,
	})
	if err != nil {
		t.Fatalf("assessment Create() failed, %v", err)
	}
	return comp
}

// HTTP helpers

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
