package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
)

type fakeMemberService struct {
	member.MemberService

	list        member.ListMembersResponse
	lastRoleReq member.UpdateMemberRoleRequest
	leftOrg     string
	err         error
}

func (f *fakeMemberService) List(ctx context.Context, organizationID string, filter member.ListMembersFilter) (member.ListMembersResponse, error) {
	return f.list, f.err
}

func (f *fakeMemberService) UpdateRole(ctx context.Context, callerUserID string, req member.UpdateMemberRoleRequest) error {
	f.lastRoleReq = req
	return f.err
}

func (f *fakeMemberService) Leave(ctx context.Context, organizationID, userID string) error {
	f.leftOrg = organizationID
	return f.err
}

type fakeMemberStore struct {
	member.MemberRepository

	members map[string]member.Member // keyed by orgID + "/" + userID
}

func (f *fakeMemberStore) GetByOrgAndUser(ctx context.Context, organizationID, userID string) (member.Member, error) {
	m, ok := f.members[organizationID+"/"+userID]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, nil
}

var testAuth = jwtauth.New("HS256", []byte("handler-test-secret"), nil)

// authedRequest attaches verified claims the way jwtauth's Verifier would.
func authedRequest(t *testing.T, method, target, body, userID string) *http.Request {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	token, _, err := testAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)

	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func memberTestRouter(svc member.MemberService, store member.MemberRepository) *chi.Mux {
	h := NewMemberHandler(svc)

	r := chi.NewRouter()
	r.Route("/organizations/{orgID}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.OrgMember(store))
			r.Get("/members", h.List)
			r.With(middleware.RequirePermission(member.PermissionMembersManage)).
				Put("/members/{memberID}/role", h.UpdateRole)
			r.Post("/leave", h.Leave)
		})
	})
	return r
}

func TestListMembersRequiresMembership(t *testing.T) {
	store := &fakeMemberStore{members: map[string]member.Member{}}
	router := memberTestRouter(&fakeMemberService{}, store)

	req := authedRequest(t, http.MethodGet, "/organizations/org-1/members", "", "outsider")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListMembersAsMember(t *testing.T) {
	store := &fakeMemberStore{members: map[string]member.Member{
		"org-1/user-1": {UserID: "user-1", Role: member.RoleMember},
	}}
	router := memberTestRouter(&fakeMemberService{}, store)

	req := authedRequest(t, http.MethodGet, "/organizations/org-1/members", "", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestListMembersRejectsUnknownRoleFilter(t *testing.T) {
	store := &fakeMemberStore{members: map[string]member.Member{
		"org-1/user-1": {UserID: "user-1", Role: member.RoleMember},
	}}
	router := memberTestRouter(&fakeMemberService{}, store)

	req := authedRequest(t, http.MethodGet, "/organizations/org-1/members?role=commander", "", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRoleNeedsMembersManage(t *testing.T) {
	store := &fakeMemberStore{members: map[string]member.Member{
		"org-1/plain": {UserID: "plain", Role: member.RoleMember},
		"org-1/boss":  {UserID: "boss", Role: member.RoleOwner},
	}}
	svc := &fakeMemberService{}
	router := memberTestRouter(svc, store)

	body := `{"role":"officer"}`

	req := authedRequest(t, http.MethodPut, "/organizations/org-1/members/m-2/role", body, "plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = authedRequest(t, http.MethodPut, "/organizations/org-1/members/m-2/role", body, "boss")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "m-2", svc.lastRoleReq.MemberID)
}

func TestLeaveOrganization(t *testing.T) {
	store := &fakeMemberStore{members: map[string]member.Member{
		"org-1/user-1": {UserID: "user-1", Role: member.RoleMember},
	}}
	svc := &fakeMemberService{}
	router := memberTestRouter(svc, store)

	req := authedRequest(t, http.MethodPost, "/organizations/org-1/leave", "", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "org-1", svc.leftOrg)
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	store := &fakeMemberStore{members: map[string]member.Member{}}
	router := memberTestRouter(&fakeMemberService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/organizations/org-1/members", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
