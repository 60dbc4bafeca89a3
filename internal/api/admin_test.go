// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTransactions_PageAndMeta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/transactions/all", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, "desc", q.Get("sort"))
		assert.Equal(t, "completed", q.Get("status"))

		w.Write([]byte(`{
			"success": true,
			"data": [
				{"_id":"tx-1","type":"deposit","amount":250.75,"status":"completed"},
				{"_id":"tx-2","type":"withdrawal","amount":40,"status":"completed"}
			],
			"meta": {"page":2,"limit":50,"total":120,"pages":3}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	page, err := client.ListTransactions(context.Background(), ListParams{
		Page: 2, Limit: 50, Sort: "desc", Status: "completed",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "tx-1", page.Items[0].ID)
	assert.Equal(t, 250.75, page.Items[0].Amount)
	assert.Equal(t, Meta{Page: 2, Limit: 50, Total: 120, Pages: 3}, page.Meta)
}

func TestPendingApplications_SortParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/pending-applications", r.URL.Path)
		assert.Equal(t, "createdAt", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		w.Write([]byte(`{"success":true,"data":[{"_id":"app-1","name":"Jo Banks","applicationStatus":"pending"}],"meta":{"page":1,"limit":20,"total":1,"pages":1}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	page, err := client.PendingApplications(context.Background(), 1, 20, "createdAt", "desc")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "app-1", page.Items[0].ID)
}

func TestApproveApplication_HitsV2Endpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v2/admin/approve-application/usr-9", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Application approved","data":{"userId":"usr-9","status":"approved"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	action, err := client.ApproveApplication(context.Background(), "usr-9")
	require.NoError(t, err)
	assert.Equal(t, "approved", action.Status)
}

func TestAirdrop_ValidationRejectsBeforeWire(t *testing.T) {
	tests := []struct {
		name  string
		req   AirdropRequest
		field string
	}{
		{"empty account", AirdropRequest{Amount: 10, Reference: "r"}, "accountNumber"},
		{"alpha account", AirdropRequest{AccountNumber: "12a4", Amount: 10, Reference: "r"}, "accountNumber"},
		{"zero amount", AirdropRequest{AccountNumber: "1234", Reference: "r"}, "amount"},
		{"negative amount", AirdropRequest{AccountNumber: "1234", Amount: -5, Reference: "r"}, "amount"},
		{"three decimals", AirdropRequest{AccountNumber: "1234", Amount: 10.999, Reference: "r"}, "amount"},
		{"missing reference", AirdropRequest{AccountNumber: "1234", Amount: 10}, "reference"},
	}

	// Any request reaching the server is a validation bypass.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("invalid airdrop reached the gateway: %s", r.URL.Path)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Airdrop(context.Background(), tc.req)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Contains(t, apiErr.Fields, tc.field)
		})
	}
}

func TestAirdrop_ValidRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/accounts/airdrop", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Airdrop complete","data":{"account":{"_id":"acc-1","accountNumber":"1234567890","balance":1250.50,"currency":"USD","status":"active"}}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	account, err := client.Airdrop(context.Background(), AirdropRequest{
		AccountNumber: "1234567890",
		Amount:        250.50,
		Reference:     "Q3 promo credit",
	})
	require.NoError(t, err)
	assert.Equal(t, 1250.50, account.Balance)
}

func TestCreateStaff_RejectsUnknownRole(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.CreateStaff(context.Background(), CreateStaffRequest{
		Name: "X", Email: "x@example.com", Password: "pw", Role: "customer",
	})
	require.Error(t, err)
}

func TestListStaff_RosterPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/users/staff", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"_id":"usr-5","name":"Robin Teller","email":"robin@example.com","role":"staff"},
				{"_id":"usr-6","name":"Sam Banker","email":"sam@example.com","role":"banker"}
			],
			"meta": {"page":1,"limit":20,"total":2,"pages":1}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	page, err := client.ListStaff(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "robin@example.com", page.Items[0].Email)
	assert.Equal(t, "banker", page.Items[1].Role)
}

func TestUserActivity_PathAndLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/activity/usr-7", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"_id":"act-1","user":"usr-7","action":"login","status":"success"},
				{"_id":"act-2","user":"usr-7","action":"profile_update","status":"success"}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	entries, err := client.UserActivity(context.Background(), "usr-7", 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "login", entries[0].Action)
}

func TestUserActivity_RequiresUserID(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.UserActivity(context.Background(), "", 5)
	require.Error(t, err)
}
