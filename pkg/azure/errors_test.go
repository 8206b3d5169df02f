package azhelpers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/azure"
)

func requestError(code string) *azure.RequestError {
	return &azure.RequestError{
		ServiceError: &azure.ServiceError{
			Code:    code,
			Message: "service said no",
		},
	}
}

func TestIsPrincipalNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"structured code", requestError("PrincipalNotFound"), true},
		{"wrapped in detailed error", autorest.DetailedError{Original: requestError("PrincipalNotFound")}, true},
		{"flattened to text", fmt.Errorf("Code=\"PrincipalNotFound\" Message=\"Principal abc does not exist\""), true},
		{"other code", requestError("RoleAssignmentExists"), false},
		{"unrelated", errors.New("connection reset"), false},
	}
	for _, c := range cases {
		if got := IsPrincipalNotFound(c.err); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestIsAuthenticationFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"authorization failed", requestError("AuthorizationFailed"), true},
		{"invalid token", requestError("InvalidAuthenticationToken"), true},
		{"expired token", requestError("ExpiredAuthenticationToken"), true},
		{"wrapped", autorest.DetailedError{Original: requestError("AuthorizationFailed")}, true},
		{"401 text", errors.New("adal: Refresh request failed. Status Code = '401'. StatusCode=401"), true},
		{"not found", requestError("ResourceGroupNotFound"), false},
		{"unrelated", errors.New("dial tcp: i/o timeout"), false},
	}
	for _, c := range cases {
		if got := IsAuthenticationFailure(c.err); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}
