package azhelpers

import (
	"strings"

	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/azure"
)

const principalNotFoundCode = "PrincipalNotFound"

var authenticationFailureCodes = []string{
	"AuthorizationFailed",
	"InvalidAuthenticationToken",
	"ExpiredAuthenticationToken",
}

// serviceErrorCode digs the ARM service error code out of an SDK error.
// Returns "" when the error carries no structured code.
func serviceErrorCode(err error) string {
	for err != nil {
		switch e := err.(type) {
		case *azure.RequestError:
			if e.ServiceError != nil {
				return e.ServiceError.Code
			}
			err = e.Original
		case *azure.ServiceError:
			return e.Code
		case autorest.DetailedError:
			err = e.Original
		default:
			return ""
		}
	}
	return ""
}

// IsPrincipalNotFound reports whether err is the authorization service not
// yet knowing about a freshly created principal. Falls back to a substring
// match because some SDK paths flatten the error to text.
func IsPrincipalNotFound(err error) bool {
	if err == nil {
		return false
	}
	if serviceErrorCode(err) == principalNotFoundCode {
		return true
	}
	return strings.Contains(err.Error(), principalNotFoundCode)
}

// IsAuthenticationFailure reports whether err looks like an authentication
// or authorization failure, as seen while a new identity's token grants are
// still propagating.
func IsAuthenticationFailure(err error) bool {
	if err == nil {
		return false
	}
	code := serviceErrorCode(err)
	for _, c := range authenticationFailureCodes {
		if code == c || strings.Contains(err.Error(), c) {
			return true
		}
	}
	return strings.Contains(err.Error(), "StatusCode=401")
}
