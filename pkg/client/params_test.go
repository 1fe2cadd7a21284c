package client

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aulaschool/aula/pkg/domain"
)

type archived bool

func TestParamsEncode(t *testing.T) {
	zero := 0
	falseVal := false
	empty := ""
	day := time.Date(2026, 3, 9, 15, 4, 0, 0, time.UTC)
	no := archived(false)
	id := uuid.MustParse("6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6")

	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"nil", nil, ""},
		{"all zero values omitted", Params{"a": "", "b": 0, "c": false, "d": nil, "e": time.Time{}, "f": []string{}, "g": (*int)(nil)}, ""},
		{"scalars", Params{"year": 2026, "q": "a b", "on": true}, "on=true&q=a+b&year=2026"},
		{"sorted keys", Params{"z": 1, "a": 2}, "a=2&z=1"},
		{"int64 slice repeats key", Params{"ids": []int64{1, 2, 3}}, "ids=1&ids=2&ids=3"},
		{"string slice skips blanks", Params{"tag": []string{"x", "", "y"}}, "tag=x&tag=y"},
		{"time as date", Params{"from": day}, "from=2026-03-09"},
		{"pointer sends explicit zero", Params{"page": &zero, "flag": &falseVal, "s": &empty}, "flag=false&page=0&s="},
		{"named string type", Params{"status": domain.PaymentPaid}, "status=paid"},
		{"special characters escaped once", Params{"search": "José&Ana=1"}, "search=Jos%C3%A9%26Ana%3D1"},
		{"float", Params{"min": 4.5}, "min=4.5"},
		{"named bool type", Params{"archived": archived(true), "hidden": archived(false)}, "archived=true"},
		{"named bool pointer", Params{"archived": &no}, "archived=false"},
		{"stringer", Params{"clientId": id, "none": uuid.Nil}, "clientId=6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6"},
		{"unsupported kinds dropped", Params{"m": map[string]int{"a": 1}, "s": struct{ A int }{1}, "keep": 1}, "keep=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}
