package assistant

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/voicedesk/internal/extractor"
	"github.com/nguyentantai21042004/voicedesk/internal/session"
)

// UploadDocuments extracts each upload at most once per filename per session.
func (a *implAssistant) UploadDocuments(ctx context.Context, st *session.State, uploads []Upload) UploadResult {
	var res UploadResult

	for _, up := range uploads {
		if !extractor.Supported(up.Name) {
			res.Failed = append(res.Failed, UploadFailure{Name: up.Name, Err: fmt.Errorf("%s: %w", up.Name, extractor.ErrUnsupportedType)})
			continue
		}
		if st.HasDocument(up.Name) {
			a.metrics.ObserveCacheHit()
			res.Cached = append(res.Cached, up.Name)
			continue
		}

		text, err := a.extractor.Extract(up.Name, up.Data)
		a.metrics.ObserveExtraction(err)
		if err != nil {
			a.logger.Warn(ctx, "Failed to extract %s: %v", up.Name, err)
			res.Failed = append(res.Failed, UploadFailure{Name: up.Name, Err: err})
			continue
		}

		st.AddDocument(up.Name, text)
		res.Extracted = append(res.Extracted, up.Name)
	}

	return res
}
