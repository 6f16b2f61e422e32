package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/user"
)

func Test_assessmentApi_assessmentCreate(t *testing.T) {
	env := setup(t)

	teacher := env.createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	student := env.createUser(t, "Hero", "heroo1", "hero@test.cd", "", []string{user.RoleStudent}, true)
	env.createSubject(t, "MATH101", "Mathematics")

	teacherToken := getToken(t, teacher)

	body := func(componentID, subjectID string, maxScore float64, contribution assessment.Percent) []byte {
		return marchallObj(t, assessment.NewComponent{
			ComponentID:  componentID,
			SubjectID:    subjectID,
			Kind:         "assignment",
			MaxScore:     maxScore,
			Contribution: contribution,
		})
	}

	tests := []httpTest{
		{
			name: "auth required", body: body("A1", "MATH101", 50, 30),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "staff required", body: body("A1", "MATH101", 50, 30), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "unknown subject", body: body("A1", "NOPE", 50, 30), token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject with the ID not found"}),
		},
		{name: "create ok", body: body("A1", "MATH101", 50, 30), token: teacherToken, wantCode: http.StatusCreated},
		{
			name: "duplicate identity", body: body("A1", "MATH101", 20, 10), token: teacherToken,
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "assessment already present"}),
		},
		{name: "fill up to 100", body: body("A2", "MATH101", 100, 70), token: teacherToken, wantCode: http.StatusCreated},
		{
			name: "contribution exceeded", body: body("A3", "MATH101", 10, 1), token: teacherToken,
			wantCode: http.StatusUnprocessableEntity, wantData: marchallObj(t, httpErr{Error: "total contribution exceeds 100%"}),
		},
		{
			name: "string contribution accepted", body: []byte(`{"component_id":"Q1","subject_id":"MATH101","kind":"quiz","max_score":10,"contribution":"0"}`),
			token: teacherToken, wantCode: http.StatusCreated,
		},
		{
			name: "bad contribution", body: []byte(`{"component_id":"Q2","subject_id":"MATH101","kind":"quiz","max_score":10,"contribution":"lol"}`),
			token: teacherToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"contribution": "must be a number between 0 and 100"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/assessments", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}

func Test_assessmentApi_assessmentQueryBySubject(t *testing.T) {
	env := setup(t)

	teacher := env.createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	env.createSubject(t, "MATH101", "Mathematics")
	env.createComponent(t, "A1", "MATH101", 50, 30)
	env.createComponent(t, "A2", "MATH101", 100, 45.5)

	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments/subject/MATH101", getToken(t, teacher))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var resp SubjectAssessmentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if len(resp.Components) != 2 {
		t.Errorf("components = %d; want 2", len(resp.Components))
	}
	if resp.ContributionTotal != 75.5 {
		t.Errorf("contribution_total = %v; want 75.5", resp.ContributionTotal)
	}

	// unknown subject
	req, rec = newAuthRequest(http.MethodGet, "/v1/assessments/subject/NOPE", getToken(t, teacher))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown subject: code = %v; wantCode %v", rec.Code, http.StatusNotFound)
	}
}

func Test_assessmentApi_assessmentUpdate(t *testing.T) {
	env := setup(t)

	teacher := env.createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	env.createSubject(t, "MATH101", "Mathematics")
	comp := env.createComponent(t, "A1", "MATH101", 50, 60)
	env.createComponent(t, "A2", "MATH101", 50, 40)

	token := getToken(t, teacher)

	// raising A1 to 70 would push the subject total to 110
	body := marchallObj(t, assessment.NewComponent{
		ComponentID: "A1", SubjectID: "MATH101", Kind: "assignment", MaxScore: 50, Contribution: 70,
	})
	req, rec := newAuthRequest(http.MethodPut, "/v1/assessments/"+comp.ID, token, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("failed! code = %v; wantCode %v; body = %s", rec.Code, http.StatusUnprocessableEntity, rec.Body.String())
	}

	// the check excludes A1's own previous weight, so 60 stays legal
	body = marchallObj(t, assessment.NewComponent{
		ComponentID: "A1", SubjectID: "MATH101", Kind: "assignment", MaxScore: 40, Contribution: 60,
	})
	req, rec = newAuthRequest(http.MethodPut, "/v1/assessments/"+comp.ID, token, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var updated assessment.Component
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if updated.MaxScore != 40 {
		t.Errorf("max_score = %v; want 40", updated.MaxScore)
	}
}
