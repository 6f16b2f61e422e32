package assessment

import (
	"encoding/json"
	"testing"

	"github.com/trezcool/darasa/core"
)

func TestPercent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    Percent
		wantErr bool
	}{
		{name: "number", json: `{"contribution": 30}`, want: 30},
		{name: "decimal number", json: `{"contribution": 45.5}`, want: 45.5},
		{name: "quoted number", json: `{"contribution": "42.5"}`, want: 42.5},
		{name: "quoted with spaces", json: `{"contribution": " 10 "}`, want: 10},
		{name: "null", json: `{"contribution": null}`, want: 0},
		{name: "text", json: `{"contribution": "lol"}`, wantErr: true},
		{name: "empty string", json: `{"contribution": ""}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nc NewComponent
			err := json.Unmarshal([]byte(tt.json), &nc)
			if tt.wantErr {
				vErr, ok := err.(*core.ValidationError)
				if !ok {
					t.Fatalf("Unmarshal() error = %v, want *core.ValidationError", err)
				}
				if len(vErr.Fields) == 0 || vErr.Fields[0].Field != "contribution" {
					t.Errorf("Unmarshal() fields = %v, want contribution field error", vErr.Fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() failed, %v", err)
			}
			if nc.Contribution != tt.want {
				t.Errorf("contribution = %v, want %v", nc.Contribution, tt.want)
			}
		})
	}
}
