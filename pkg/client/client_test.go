package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aulaschool/aula/pkg/domain"
)

func TestDo_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"with token", "abc", "Bearer abc"},
		{"without token", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			var hasAuth bool
			var gotCT string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_, hasAuth = r.Header["Authorization"]
				gotCT = r.Header.Get("Content-Type")
				w.Write([]byte(`{}`)) //nolint:errcheck
			}))
			defer srv.Close()

			c := New(srv.URL, NewSession(tt.token))
			if _, err := c.Do(context.Background(), Request{Path: "api/users"}); err != nil {
				t.Fatalf("Do() error: %v", err)
			}
			if gotAuth != tt.want {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.want)
			}
			if tt.token == "" && hasAuth {
				t.Error("Authorization header present without a token")
			}
			if gotCT != "application/json" {
				t.Errorf("Content-Type = %q, want %q", gotCT, "application/json")
			}
		})
	}
}

func TestDo_ExtraHeadersAndMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/courses/7" {
			t.Errorf("path = %q, want /api/courses/7", r.URL.Path)
		}
		if got := r.Header.Get("X-School"); got != "3" {
			t.Errorf("X-School = %q, want %q", got, "3")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", NewSession("tok"))
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPut,
		Path:   "/api/courses/7",
		Header: http.Header{"X-School": []string{"3"}},
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
}

func TestDo_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
		w.Write([]byte(`{"ignored":true}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	res, err := c.Do(context.Background(), Request{Method: http.MethodDelete, Path: "api/users/1"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !res.IsEmpty() {
		t.Errorf("Kind() = %v, want empty", res.Kind())
	}
	v, err := res.Value()
	if err != nil || v != nil {
		t.Errorf("Value() = %v, %v; want nil, nil", v, err)
	}
}

func TestDo_JSONOrText(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind ResultKind
		want     any
	}{
		{"json object", `{"a":1}`, ResultJSON, map[string]any{"a": float64(1)}},
		{"json array", `[1,2]`, ResultJSON, []any{float64(1), float64(2)}},
		{"plain text", "plain", ResultText, "plain"},
		{"empty body", "", ResultText, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			res, err := New(srv.URL, nil).Do(context.Background(), Request{Path: "api/x"})
			if err != nil {
				t.Fatalf("Do() error: %v", err)
			}
			if res.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", res.Kind(), tt.wantKind)
			}
			got, err := res.Value()
			if err != nil {
				t.Fatalf("Value() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Value() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDo_EchoRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, r.Body) //nolint:errcheck
	}))
	defer srv.Close()

	in := map[string]any{
		"name":    "Matemáticas 5°",
		"ids":     []any{float64(1), float64(2)},
		"nested":  map[string]any{"ok": true},
		"nothing": nil,
	}
	res, err := New(srv.URL, nil).Do(context.Background(), Request{Method: http.MethodPost, Path: "api/echo", Body: in})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	out, err := res.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("echo = %#v, want %#v", out, in)
	}
}

func TestDo_ErrorMessage(t *testing.T) {
	long := strings.Repeat("x", maxRawErrorLen+1)
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusBadRequest, `{"message":"X"}`, "X"},
		{"title field", http.StatusBadRequest, `{"title":"Y"}`, "Y"},
		{"message wins over title", http.StatusConflict, `{"title":"Y","message":"X"}`, "X"},
		{"empty message falls to title", http.StatusConflict, `{"message":"","title":"Y"}`, "Y"},
		{"short raw text", http.StatusInternalServerError, "oops", "oops"},
		{"long raw text", http.StatusInternalServerError, long, "Internal Server Error"},
		{"empty body", http.StatusForbidden, "", "Forbidden"},
		{"json without fields", http.StatusBadGateway, `{"error":"nope"}`, `{"error":"nope"}`},
		{"unknown status", 599, "", "HTTP 599"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil).Do(context.Background(), Request{Path: "api/x"})
			if err == nil {
				t.Fatal("expected error")
			}
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("error type = %T, want *RequestError", err)
			}
			if reqErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", reqErr.Message, tt.want)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
			if reqErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, tt.status)
			}
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Do(context.Background(), Request{Path: "api/x"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T, want *RequestError", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", reqErr.StatusCode)
	}
}

func TestDo_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second) // slow server
		w.Write([]byte(`{}`))       //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := New(srv.URL, nil).Me(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false for %v", err)
	}
}

func TestDecode_TextResultFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "maintenance") //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListUsers(context.Background(), 1)
	if !errors.Is(err, ErrUnexpectedText) {
		t.Errorf("error = %v, want ErrUnexpectedText", err)
	}
}

func TestMutation_EmptyOKBody(t *testing.T) {
	for _, body := range []string{"", "\n"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, body) //nolint:errcheck
		}))

		c := New(srv.URL, nil)
		if _, err := c.UpdateAttendance(context.Background(), domain.AttendanceRecord{ID: 4}); err != nil {
			t.Errorf("UpdateAttendance(body %q) error: %v", body, err)
		}
		run, err := c.ApprovePayroll(context.Background(), 9)
		if err != nil {
			t.Errorf("ApprovePayroll(body %q) error: %v", body, err)
		} else if run.ID != 0 {
			t.Errorf("ApprovePayroll(body %q) = %+v, want zero run", body, run)
		}

		// The primitive still reports what came back.
		res, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "api/payroll/9/approve"})
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		if res.Kind() != ResultText {
			t.Errorf("Kind() = %v, want text", res.Kind())
		}
		srv.Close()
	}
}

func TestLoginThenAuthenticatedCall(t *testing.T) {
	var meAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			if body["email"] != "a@b.com" || body["password"] != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.LoginResponse{ //nolint:errcheck
				Token: "t1",
				User:  domain.User{ID: 5, Email: "a@b.com"},
			})
		case "/api/auth/me":
			meAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(domain.User{ID: 5}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	sess := NewSession("")
	c := New(srv.URL, sess)
	resp, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if sess.Authenticated() {
		t.Error("Login() must not set the session token by itself")
	}
	if resp.User.ID != 5 {
		t.Errorf("User.ID = %d, want 5", resp.User.ID)
	}

	sess.SetToken(resp.Token)
	if got := sess.Token(); got != "t1" {
		t.Errorf("Token() = %q, want %q", got, "t1")
	}
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if meAuth != "Bearer t1" {
		t.Errorf("Authorization = %q, want %q", meAuth, "Bearer t1")
	}
}

func TestGetCourseByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses/999" || r.URL.Query().Get("schoolId") != "1" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"title":"Not Found"}`) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL, NewSession("tok")).GetCourseByID(context.Background(), 999, 1)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if got := Message(err); got != "Not Found" {
		t.Errorf("Message(err) = %q, want %q", got, "Not Found")
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Error("IsStatus(err, 404) = false, want true")
	}
}

func TestListTeachers_FiltersByRoleInOrder(t *testing.T) {
	users := []domain.User{
		{ID: 1, RoleID: domain.RoleStudent},
		{ID: 2, RoleID: domain.RoleTeacher},
		{ID: 3, RoleID: domain.RoleAdmin},
		{ID: 4, RoleID: domain.RoleCoordinator},
		{ID: 5, RoleID: domain.RoleTeacher},
	}
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		json.NewEncoder(w).Encode(users) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	teachers, err := c.ListTeachers(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTeachers() error: %v", err)
	}
	var ids []int64
	for _, u := range teachers {
		ids = append(ids, u.ID)
	}
	if want := []int64{2, 4, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("teacher IDs = %v, want %v", ids, want)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1", calls)
	}

	c = New(srv.URL, nil, WithRoles(domain.RoleSet{Teacher: []int64{domain.RoleTeacher}}))
	teachers, err = c.ListTeachers(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTeachers() error: %v", err)
	}
	if len(teachers) != 2 {
		t.Errorf("got %d teachers with custom roles, want 2", len(teachers))
	}
}

func TestListPayments_QueryParams(t *testing.T) {
	tests := []struct {
		name   string
		filter PaymentFilter
		want   string
	}{
		{"no filters", PaymentFilter{}, ""},
		{"school only", PaymentFilter{SchoolID: 4}, "schoolId=4"},
		{
			"all filters",
			PaymentFilter{SchoolID: 4, Year: 2026, Month: 3, Search: "ana & co", Status: domain.PaymentPending, Page: 2, PageSize: 25},
			"month=3&page=2&pageSize=25&schoolId=4&search=ana+%26+co&status=pending&year=2026",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				io.WriteString(w, `{"items":[{"id":1,"amount":10}],"totalCount":1,"page":1,"pageSize":25}`) //nolint:errcheck
			}))
			defer srv.Close()

			page, err := New(srv.URL, nil).ListPayments(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("ListPayments() error: %v", err)
			}
			if gotQuery != tt.want {
				t.Errorf("query = %q, want %q", gotQuery, tt.want)
			}
			if len(page.Items) != 1 || page.Items[0].Amount != 10 {
				t.Errorf("items = %+v, want one payment of 10", page.Items)
			}
		})
	}
}

func TestInvoicePDFURL_TextResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"plain text", "https://cdn.example/inv/9.pdf"},
		{"json string", `"https://cdn.example/inv/9.pdf"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/invoices/9/pdf-url" {
					http.NotFound(w, r)
					return
				}
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			got, err := New(srv.URL, nil).InvoicePDFURL(context.Background(), 9)
			if err != nil {
				t.Fatalf("InvoicePDFURL() error: %v", err)
			}
			if got != "https://cdn.example/inv/9.pdf" {
				t.Errorf("InvoicePDFURL() = %q", got)
			}
		})
	}
}

func TestGetStudentAverage_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	avg, err := New(srv.URL, nil).GetStudentAverage(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetStudentAverage() error: %v", err)
	}
	if avg != nil {
		t.Errorf("average = %v, want nil", *avg)
	}
}
