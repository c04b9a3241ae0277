package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maisonvelour/storefront-backend/internal/activity"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
)

type activityRecorder interface {
	Record(ctx context.Context, entry activity.Entry) error
}

// RecordActivity appends every authenticated request to the admin activity trail
// once the handler has written its response. Recording failures never affect the
// response.
func RecordActivity(recorder activityRecorder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			userID := UserIDFromContext(r.Context())
			if userID == "" {
				return
			}

			action := r.URL.Path
			metadata := map[string]any{}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					action = pattern
				}
				for i, key := range rctx.URLParams.Keys {
					if key == "*" || i >= len(rctx.URLParams.Values) {
						continue
					}
					metadata[key] = rctx.URLParams.Values[i]
				}
			}
			if q := r.URL.RawQuery; q != "" {
				metadata["query"] = q
			}
			if reqID := w.Header().Get(requestIDHeader); reqID != "" {
				metadata["request_id"] = reqID
			}

			entry := activity.Entry{
				ActorID:   userID,
				ActorRole: RoleFromContext(r.Context()),
				Action:    r.Method + " " + action,
				Method:    r.Method,
				Path:      r.URL.Path,
				Status:    rec.Status(),
				Metadata:  metadata,
			}
			if err := recorder.Record(context.WithoutCancel(r.Context()), entry); err != nil && logg != nil {
				logg.Error(r.Context(), "activity.record_failed", err)
			}
		})
	}
}
