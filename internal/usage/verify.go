package usage

import (
	"fmt"

	"github.com/vuzo-ai/vzdash/internal/model"
)

// Verify checks the cross-consistency invariants between the three views of
// one snapshot. Violations are reported, never corrected: the server is the
// system of record and bad data must stay visibly bad.
//
// The raw log is paginated upstream, so it may legitimately be a strict
// subset of what the summary covers; the log is only reconciled against the
// summary when the counts say it is complete. Daily buckets are not
// paginated and always have to roll up to the summary exactly.
func Verify(v *View) []model.Anomaly {
	var anomalies []model.Anomaly

	for _, r := range v.Records {
		if r.TotalTokens != r.InputTokens+r.OutputTokens {
			anomalies = append(anomalies, model.Anomaly{
				Field: "usage record " + r.ID,
				Detail: fmt.Sprintf("total_tokens %d != input %d + output %d",
					r.TotalTokens, r.InputTokens, r.OutputTokens),
			})
		}
	}

	if n := int64(len(v.Records)); n > v.Summary.TotalRequests {
		anomalies = append(anomalies, model.Anomaly{
			Field: "usage log",
			Detail: fmt.Sprintf("log has %d records but summary claims %d requests",
				n, v.Summary.TotalRequests),
		})
	} else if n == v.Summary.TotalRequests {
		var in, out int64
		for _, r := range v.Records {
			in += r.InputTokens
			out += r.OutputTokens
		}
		if in != v.Summary.TotalInputTokens || out != v.Summary.TotalOutputTokens {
			anomalies = append(anomalies, model.Anomaly{
				Field: "usage log",
				Detail: fmt.Sprintf("log tokens %d/%d do not reconcile with summary %d/%d",
					in, out, v.Summary.TotalInputTokens, v.Summary.TotalOutputTokens),
			})
		}
	}

	var reqs, in, out int64
	for _, b := range v.Daily {
		reqs += b.TotalRequests
		in += b.InputTokens
		out += b.OutputTokens
	}
	if reqs != v.Summary.TotalRequests {
		anomalies = append(anomalies, model.Anomaly{
			Field: "daily rollup",
			Detail: fmt.Sprintf("buckets total %d requests but summary claims %d",
				reqs, v.Summary.TotalRequests),
		})
	}
	if in != v.Summary.TotalInputTokens || out != v.Summary.TotalOutputTokens {
		anomalies = append(anomalies, model.Anomaly{
			Field: "daily rollup",
			Detail: fmt.Sprintf("bucket tokens %d/%d do not reconcile with summary %d/%d",
				in, out, v.Summary.TotalInputTokens, v.Summary.TotalOutputTokens),
		})
	}

	if v.Summary.TotalTokens != v.Summary.TotalInputTokens+v.Summary.TotalOutputTokens {
		anomalies = append(anomalies, model.Anomaly{
			Field: "summary",
			Detail: fmt.Sprintf("total_tokens %d != input %d + output %d",
				v.Summary.TotalTokens, v.Summary.TotalInputTokens, v.Summary.TotalOutputTokens),
		})
	}

	return anomalies
}
