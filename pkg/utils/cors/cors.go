// Package cors provides helpers for answering CORS preflight requests from the catalog and order entry UI.
package cors

import (
	"fmt"
	"net/http"
	"strings"

	httputils "github.com/teaguenet/shadebar/pkg/utils/http"
	"github.com/teaguenet/shadebar/pkg/utils/log"
)

// Enable writes an Access-Control-Allow-Origin header with the given url to the supplied http response writer, enabling CORS for that url.
func Enable(w *http.ResponseWriter, url string) {
	(*w).Header().Set("Access-Control-Allow-Origin", url)
}

// SetPreflightHeaders writes the Access-Control-Allow-Methods and Access-Control-Allow-Headers headers to the supplied http response writer.
// This gives the requestor all the information they need to make requests on the particular endpoint you are calling this function from.
func SetPreflightHeaders(w *http.ResponseWriter, allowedMethods []string) {
	(*w).Header().Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
	(*w).Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Access-Control-Allow-Credentials, Access-Control-Allow-Origin")
}

type Options struct {
	// URL that is allowed to make CORS requests
	AllowedURL string
	// Name of the calling API
	APIName string
	// Allowed HTTP methods to send back for this API
	AllowedMethods []string
}

// SendPreflightHeaders sends the preflight headers for CORS requests, then
// hands non-preflight requests on to the next handler.
func SendPreflightHeaders(opts Options, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Enable(&w, opts.AllowedURL)
		SetPreflightHeaders(&w, opts.AllowedMethods)
		if r.Method == http.MethodOptions {
			log.Info(fmt.Sprintf("%s API: Sent response to CORS preflight request from %s", opts.APIName, r.RemoteAddr))
			return
		}
		httputils.ValidateHttpRequestMethod(w, r, opts.AllowedMethods)

		next.ServeHTTP(w, r)
	})
}
