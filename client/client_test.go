package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casperstats/cspr-leaderboard/client"
	"github.com/stretchr/testify/require"
)

func TestFetchAccount(t *testing.T) {
	vectors := []struct {
		testName        string
		status          int
		body            string
		expectedBalance string
		err             string
	}{
		{
			testName:        "StringBalance",
			status:          200,
			body:            `{"data":{"public_key":"01abc","balance":"1000000000"}}`,
			expectedBalance: "1000000000",
		},
		{
			testName:        "NumericBalance",
			status:          200,
			body:            `{"data":{"public_key":"01abc","balance":250000000}}`,
			expectedBalance: "250000000",
		},
		{
			testName: "NotFound",
			status:   404,
			body:     `{"message":"account not found"}`,
			err:      "404",
		},
		{
			testName: "MissingData",
			status:   200,
			body:     `{}`,
			err:      "not found",
		},
		{
			testName: "MalformedJson",
			status:   200,
			body:     `{"data":`,
			err:      "decode",
		},
	}

	for _, vector := range vectors {
		t.Run(vector.testName, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/accounts/01abc", r.URL.Path)
				require.Equal(t, "application/json", r.Header.Get("accept"))
				require.Equal(t, "test-api-key", r.Header.Get("authorization"))
				w.WriteHeader(vector.status)
				_, err := w.Write([]byte(vector.body))
				require.NoError(t, err)
			}))
			defer server.Close()

			cli := client.NewClient(server.URL, "test-api-key", 5*time.Second)
			account, err := cli.FetchAccount(context.Background(), "01abc")
			if vector.err != "" {
				require.Error(t, err)
				require.ErrorContains(t, err, vector.err)
			} else {
				require.NoError(t, err)
				require.Equal(t, vector.expectedBalance, string(account.Balance))
			}
		})
	}
}

func TestFetchAccountNoApiKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// header must be absent entirely when no key is configured
		_, hasAuth := r.Header["Authorization"]
		require.False(t, hasAuth)
		fmt.Fprint(w, `{"data":{"balance":"1"}}`)
	}))
	defer server.Close()

	cli := client.NewClient(server.URL+"/", "", 5*time.Second)
	_, err := cli.FetchAccount(context.Background(), "01abc")
	require.NoError(t, err)
}

func TestFetchDelegations(t *testing.T) {
	vectors := []struct {
		testName string
		body     string
		stakes   []string
	}{
		{
			testName: "TwoDelegations",
			body:     `{"data":[{"validator_public_key":"01v1","stake":"100"},{"validator_public_key":"01v2","stake":200}]}`,
			stakes:   []string{"100", "200"},
		},
		{
			testName: "MissingData",
			body:     `{"item_count":0}`,
			stakes:   []string{},
		},
		{
			testName: "NullData",
			body:     `{"data":null}`,
			stakes:   []string{},
		},
		{
			// one bad stake value must not fail the request
			testName: "MalformedStake",
			body:     `{"data":[{"stake":{"weird":true}},{"stake":"300"}]}`,
			stakes:   []string{`{"weird":true}`, "300"},
		},
	}

	for _, vector := range vectors {
		t.Run(vector.testName, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/accounts/01abc/delegations", r.URL.Path)
				require.Equal(t, "200", r.URL.Query().Get("limit"))
				_, err := w.Write([]byte(vector.body))
				require.NoError(t, err)
			}))
			defer server.Close()

			cli := client.NewClient(server.URL, "", 5*time.Second)
			delegations, err := cli.FetchDelegations(context.Background(), "01abc")
			require.NoError(t, err)
			require.Len(t, delegations, len(vector.stakes))
			for i, stake := range vector.stakes {
				require.Equal(t, stake, string(delegations[i].Stake))
			}
		})
	}
}
