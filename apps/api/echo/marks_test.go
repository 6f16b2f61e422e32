package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/marks"
	"github.com/trezcool/darasa/core/user"
)

func Test_marksApi_marksCreate(t *testing.T) {
	env := setup(t)

	teacher := env.createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	env.createSubject(t, "MATH101", "Mathematics")
	std := env.createStudent(t, "kinaya")
	a1 := env.createComponent(t, "A1", "MATH101", 50, 30)

	token := getToken(t, teacher)

	body := func(studentID, subjectID string, components ...marks.ComponentScore) []byte {
		return marchallObj(t, marks.NewRecord{StudentID: studentID, SubjectID: subjectID, Components: components})
	}

	tests := []httpTest{
		{
			name: "auth required", body: body(std.ID, "MATH101"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "unknown subject", body: body(std.ID, "NOPE"), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject with the ID not found"}),
		},
		{
			name: "unknown student", body: body("nope", "MATH101"), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student with the ID not found"}),
		},
		{
			name: "score exceeds max", body: body(std.ID, "MATH101", marks.ComponentScore{ComponentID: a1.ID, Score: 51}), token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "score exceeds the assessment's maximum"}),
		},
		{
			name: "create ok", body: body(std.ID, "MATH101", marks.ComponentScore{ComponentID: a1.ID, Score: 25}), token: token,
			wantCode: http.StatusCreated,
		},
		{
			name: "duplicate identity", body: body(std.ID, "MATH101"), token: token,
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "marks already present"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/marks", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			// (25/50) * 30 = 15
			var rec2 marks.Record
			if err := json.Unmarshal(rec.Body.Bytes(), &rec2); err != nil {
				t.Fatalf("unmarshalling response failed, %v", err)
			}
			if rec2.Total != 15 {
				t.Errorf("total = %v; want 15", rec2.Total)
			}
			if rec2.Status != marks.StatusComplete {
				t.Errorf("status = %q; want %q", rec2.Status, marks.StatusComplete)
			}
		})
	}
}

func Test_marksApi_marksAmend(t *testing.T) {
	env := setup(t)

	teacher := env.createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	env.createSubject(t, "MATH101", "Mathematics")
	std := env.createStudent(t, "kinaya")
	a1 := env.createComponent(t, "A1", "MATH101", 50, 30)
	a2 := env.createComponent(t, "A2", "MATH101", 20, 20)

	token := getToken(t, teacher)

	// start with A1 scored: (25/50)*30 = 15
	req, rec := newAuthRequest(http.MethodPost, "/v1/marks", token, marchallObj(t, marks.NewRecord{
		StudentID:  std.ID,
		SubjectID:  "MATH101",
		Components: []marks.ComponentScore{{ComponentID: a1.ID, Score: 25}},
	}))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var created marks.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if created.Status != marks.StatusDraft {
		t.Errorf("status = %q; want %q", created.Status, marks.StatusDraft)
	}

	// the A1 entry is skipped (no overwrite); A2 adds (10/20)*20 = 10
	req, rec = newAuthRequest(http.MethodPatch, "/v1/marks/"+created.ID+"/scores", token, marchallObj(t, marks.AmendScores{
		Components: []marks.ComponentScore{
			{ComponentID: a1.ID, Score: 999},
			{ComponentID: a2.ID, Score: 10},
		},
	}))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("amend failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var amended marks.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &amended); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if amended.Total != 25 {
		t.Errorf("total = %v; want 25", amended.Total)
	}
	if len(amended.Components) != 2 {
		t.Fatalf("components = %d; want 2", len(amended.Components))
	}
	for _, cs := range amended.Components {
		if cs.ComponentID == a1.ID && cs.Score != 25 {
			t.Errorf("A1 score = %v; want untouched 25", cs.Score)
		}
	}
	if amended.Status != marks.StatusComplete {
		t.Errorf("status = %q; want %q", amended.Status, marks.StatusComplete)
	}

	// a failing entry leaves the record untouched
	req, rec = newAuthRequest(http.MethodPatch, "/v1/marks/"+created.ID+"/scores", token, marchallObj(t, marks.AmendScores{
		Components: []marks.ComponentScore{{ComponentID: "nope", Score: 1}},
	}))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("amend with unknown component: code = %v; wantCode %v", rec.Code, http.StatusNotFound)
	}
	req, rec = newAuthRequest(http.MethodGet, "/v1/marks/"+created.ID, token)
	env.app.ServeHTTP(rec, req)
	var refreshed marks.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if refreshed.Total != 25 {
		t.Errorf("total after failed amend = %v; want 25", refreshed.Total)
	}
}

func Test_marksApi_marksReplace(t *testing.T) {
	env := setup(t)

	teacher := env.createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	env.createSubject(t, "MATH101", "Mathematics")
	std := env.createStudent(t, "kinaya")
	a1 := env.createComponent(t, "A1", "MATH101", 50, 30)
	a2 := env.createComponent(t, "A2", "MATH101", 20, 20)

	token := getToken(t, teacher)

	rec0, err := env.marksSvc.Create(context.Background(), marks.NewRecord{
		StudentID:  std.ID,
		SubjectID:  "MATH101",
		Components: []marks.ComponentScore{{ComponentID: a1.ID, Score: 25}, {ComponentID: a2.ID, Score: 20}},
	})
	if err != nil {
		t.Fatalf("marks Create() failed, %v", err)
	}
	if rec0.Total != 35 {
		t.Fatalf("total = %v; want 35", rec0.Total)
	}

	// the whole component set is swapped and the total recomputed
	req, rec := newAuthRequest(http.MethodPut, "/v1/marks/"+rec0.ID, token, marchallObj(t, marks.NewRecord{
		StudentID:  std.ID,
		SubjectID:  "MATH101",
		Components: []marks.ComponentScore{{ComponentID: a1.ID, Score: 50}},
	}))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("replace failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var replaced marks.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &replaced); err != nil {
		t.Fatalf("unmarshalling response failed, %v", err)
	}
	if replaced.Total != 30 {
		t.Errorf("total = %v; want 30", replaced.Total)
	}
	if len(replaced.Components) != 1 {
		t.Errorf("components = %d; want 1", len(replaced.Components))
	}
	if replaced.Status != marks.StatusDraft {
		t.Errorf("status = %q; want %q", replaced.Status, marks.StatusDraft)
	}
}
