package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "seed-test-token"

// fakeAPI serves the subset of the REST API the seeder calls.
type fakeAPI struct {
	mu          sync.Mutex
	seq         int
	departments []employee.Department
	employees   []employee.Employee
	leaveTypes  []leave.LeaveType
	requests    map[string]*leave.LeaveRequest
	attendances int
	payslips    int
	reviews     int
	submitted   int
	calls       []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{requests: make(map[string]*leave.LeaveRequest)}
}

func fakeID(n int) string {
	return fmt.Sprintf("0198a1b2-0000-7000-8000-%012d", n)
}

func (f *fakeAPI) nextID() string {
	f.seq++
	return fakeID(f.seq)
}

func decode(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	authed := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				response.Unauthorized(w, "Authentication required")
				return
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls = append(f.calls, r.Method+" "+r.URL.Path)
			h(w, r)
		})
	}

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		decode(t, r, &body)
		if body["password"] != "secret-password" {
			response.Unauthorized(w, "invalid email or password")
			return
		}
		response.SuccessWithMessage(w, "User logged in successfully", map[string]any{"access_token": testToken})
	})

	authed("GET /api/v1/departments", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, f.departments)
	})
	authed("POST /api/v1/departments", func(w http.ResponseWriter, r *http.Request) {
		var req employee.CreateDepartmentRequest
		decode(t, r, &req)
		d := employee.Department{ID: f.nextID(), Name: req.Name}
		f.departments = append(f.departments, d)
		response.Created(w, "Department created successfully", d)
	})

	authed("GET /api/v1/leave-types", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("active_only"))
		response.Success(w, f.leaveTypes)
	})
	authed("POST /api/v1/leave-types", func(w http.ResponseWriter, r *http.Request) {
		var req leave.CreateLeaveTypeRequest
		decode(t, r, &req)
		lt := leave.LeaveType{
			ID:                 f.nextID(),
			Name:               req.Name,
			RequiresAttachment: req.RequiresAttachment,
			MaxConsecutiveDays: req.MaxConsecutiveDays,
			Active:             true,
		}
		f.leaveTypes = append(f.leaveTypes, lt)
		response.Created(w, "Leave type created successfully", lt)
	})
	authed("PUT /api/v1/leave-types/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req leave.UpdateLeaveTypeRequest
		decode(t, r, &req)
		for i := range f.leaveTypes {
			if f.leaveTypes[i].ID == r.PathValue("id") && req.Active != nil {
				f.leaveTypes[i].Active = *req.Active
				response.Success(w, f.leaveTypes[i])
				return
			}
		}
		response.NotFound(w, "Leave type not found")
	})

	authed("POST /api/v1/employees", func(w http.ResponseWriter, r *http.Request) {
		var req employee.CreateEmployeeRequest
		decode(t, r, &req)
		assert.NoError(t, req.Validate())
		emp := employee.Employee{
			ID:           f.nextID(),
			EmployeeCode: employee.FormatEmployeeCode(int64(len(f.employees) + 1)),
			Name:         req.Name,
			BasicSalary:  req.BasicSalary,
		}
		f.employees = append(f.employees, emp)
		response.Created(w, "Employee created successfully", emp)
	})

	authed("POST /api/v1/attendances", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CheckIn  string `json:"check_in"`
			CheckOut string `json:"check_out"`
		}
		decode(t, r, &req)
		in, err := time.Parse(time.RFC3339, req.CheckIn)
		require.NoError(t, err)
		out, err := time.Parse(time.RFC3339, req.CheckOut)
		require.NoError(t, err)
		assert.True(t, out.After(in))
		f.attendances++
		response.Created(w, "Attendance created successfully", map[string]any{"id": f.nextID()})
	})

	authed("GET /api/v1/leaves", func(w http.ResponseWriter, r *http.Request) {
		all := make([]leave.LeaveRequest, 0, len(f.requests))
		for i := 1; i <= f.seq; i++ {
			if req, ok := f.requests[fakeID(i)]; ok {
				all = append(all, *req)
			}
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		start := min((page-1)*limit, len(all))
		end := min(start+limit, len(all))
		response.SuccessWithMeta(w, all[start:end], &response.Meta{
			Page:       page,
			Limit:      limit,
			TotalItems: int64(len(all)),
			TotalPages: (len(all) + limit - 1) / limit,
		})
	})
	authed("POST /api/v1/leaves", func(w http.ResponseWriter, r *http.Request) {
		var req leave.CreateLeaveRequestRequest
		decode(t, r, &req)
		if err := req.Validate(); err != nil {
			response.HandleError(w, err)
			return
		}
		request := &leave.LeaveRequest{ID: f.nextID(), LeaveTypeID: req.LeaveTypeID, State: leave.StateDraft}
		if req.Submit {
			request.State = leave.StateConfirm
		}
		f.requests[request.ID] = request
		response.Created(w, "Leave request created successfully", request)
	})
	authed("POST /api/v1/leaves/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		request, ok := f.requests[r.PathValue("id")]
		if !ok {
			response.NotFound(w, "Leave request not found")
			return
		}
		var lt leave.LeaveType
		for _, candidate := range f.leaveTypes {
			if candidate.ID == request.LeaveTypeID {
				lt = candidate
			}
		}
		next, err := leave.Transition(request.State, leave.Action(r.PathValue("action")), lt)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		request.State = next
		response.Success(w, request)
	})
	authed("DELETE /api/v1/leaves/{id}", func(w http.ResponseWriter, r *http.Request) {
		request, ok := f.requests[r.PathValue("id")]
		if !ok {
			response.NotFound(w, "Leave request not found")
			return
		}
		if !request.State.CanDelete() {
			response.HandleError(w, leave.ErrNotDeletable)
			return
		}
		delete(f.requests, request.ID)
		response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
	})

	authed("POST /api/v1/payslips", func(w http.ResponseWriter, r *http.Request) {
		f.payslips++
		response.Created(w, "Payslip created successfully", map[string]any{"id": f.nextID()})
	})
	authed("POST /api/v1/reviews", func(w http.ResponseWriter, r *http.Request) {
		var req performance.CreateReviewRequest
		decode(t, r, &req)
		assert.NoError(t, req.Validate())
		f.reviews++
		response.Created(w, "Review created successfully", performance.Review{ID: f.nextID(), State: performance.ReviewDraft})
	})
	authed("POST /api/v1/reviews/{id}/submit", func(w http.ResponseWriter, r *http.Request) {
		f.submitted++
		response.Success(w, performance.Review{ID: r.PathValue("id"), State: performance.ReviewSubmitted})
	})

	return mux
}

func newTestSeeder(t *testing.T, api *fakeAPI) *Seeder {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/api/v1/", srv.Client())
	require.NoError(t, client.Login(context.Background(), "admin@dayflow.test", "secret-password"))

	s := NewSeeder(client, gofakeit.New(42), slog.New(slog.DiscardHandler))
	s.now = func() time.Time { return time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestClient_LoginFailure(t *testing.T) {
	srv := httptest.NewServer(newFakeAPI().handler(t))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/v1", srv.Client())
	err := client.Login(context.Background(), "admin@dayflow.test", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestClient_RequiresLogin(t *testing.T) {
	srv := httptest.NewServer(newFakeAPI().handler(t))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/v1", srv.Client())
	err := client.Get(context.Background(), "/departments", nil)
	assert.True(t, IsCode(err, "UNAUTHORIZED"))
}

func TestClient_ValidationDetails(t *testing.T) {
	s := newTestSeeder(t, newFakeAPI())

	err := s.client.Post(context.Background(), "/leaves", leave.CreateLeaveRequestRequest{DateFrom: "2025-06-10"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Details, "leave_type_id")
	assert.Contains(t, apiErr.Details, "date_to")
}

func TestListAll_WalksPages(t *testing.T) {
	api := newFakeAPI()
	for i := 0; i < 230; i++ {
		id := api.nextID()
		api.requests[id] = &leave.LeaveRequest{ID: id, State: leave.StateDraft}
	}
	s := newTestSeeder(t, api)

	requests, err := ListAll[leave.LeaveRequest](context.Background(), s.client, "/leaves", nil)
	require.NoError(t, err)
	assert.Len(t, requests, 230)
	assert.Equal(t, fakeID(1), requests[0].ID)
	assert.Equal(t, fakeID(230), requests[229].ID)
}

func TestLeaveTypes_CreatesMissingAndReactivates(t *testing.T) {
	api := newFakeAPI()
	api.leaveTypes = []leave.LeaveType{{ID: "lt-sick", Name: "sick leave", Active: false}}
	s := newTestSeeder(t, api)

	types, err := s.LeaveTypes(context.Background())
	require.NoError(t, err)

	require.Len(t, types, 3)
	assert.Equal(t, "Paid Leave", types[0].Name)
	assert.Equal(t, "lt-sick", types[1].ID)
	assert.True(t, types[1].Active)
	assert.Len(t, api.leaveTypes, 3)

	// A second run changes nothing
	_, err = s.LeaveTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, api.leaveTypes, 3)
}

func TestDemo_CreatesRecords(t *testing.T) {
	api := newFakeAPI()
	s := newTestSeeder(t, api)

	summary, err := s.Demo(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, len(Departments), summary.Departments)
	assert.Equal(t, 4, summary.Employees)
	assert.Len(t, api.employees, 4)
	assert.Equal(t, api.attendances, summary.Attendances)
	assert.LessOrEqual(t, summary.Attendances, 4*5)
	assert.Equal(t, 4, summary.LeaveRequests+summary.Skipped)
	assert.Len(t, api.requests, summary.LeaveRequests)
	assert.Equal(t, 4, api.payslips)
	assert.Equal(t, 4, api.reviews)
	assert.Equal(t, 4, api.submitted)

	for _, request := range api.requests {
		assert.Contains(t, []leave.State{leave.StateConfirm, leave.StateValidate}, request.State)
	}

	// Departments are reused on a second run
	summary, err = s.Demo(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, summary.Departments)
	assert.Len(t, api.departments, len(Departments))
}

func TestCleanLeaves_CancelsActiveFirst(t *testing.T) {
	api := newFakeAPI()
	api.leaveTypes = []leave.LeaveType{{ID: "lt", Name: "Paid Leave", Active: true}}
	for _, state := range []leave.State{leave.StateDraft, leave.StateConfirm, leave.StateValidate, leave.StateRefuse} {
		id := api.nextID()
		api.requests[id] = &leave.LeaveRequest{ID: id, LeaveTypeID: "lt", State: state}
	}
	s := newTestSeeder(t, api)

	deleted, err := s.CleanLeaves(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, deleted)
	assert.Empty(t, api.requests)
	assert.Contains(t, api.calls, "POST /api/v1/leaves/"+fakeID(2)+"/cancel")
	assert.Contains(t, api.calls, "POST /api/v1/leaves/"+fakeID(3)+"/cancel")
	assert.NotContains(t, api.calls, "POST /api/v1/leaves/"+fakeID(1)+"/cancel")
}

func TestEmailPart(t *testing.T) {
	assert.Equal(t, "dangelo", emailPart("D'Angelo"))
	assert.Equal(t, "marysue", emailPart("Mary Sue"))
}
