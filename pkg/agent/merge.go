package agent

import "strings"

// Merge applies a delta onto a copy of the draft. Absent values and strings
// that are blank after trimming never overwrite existing data; everything else
// is last-write-wins per field. Routing keys are not part of DeltaFields, so
// they cannot leak into the draft.
func Merge(draft Draft, delta Delta) Draft {
	out := draft.Clone()
	f := delta.Fields

	if f.HCPID != nil && *f.HCPID > 0 {
		out.HCPID = cloneUint(f.HCPID)
	}

	mergeString(&out.HCPName, f.HCPName)
	mergeString(&out.InteractionType, f.InteractionType)
	mergeString(&out.Date, f.Date)
	mergeString(&out.Time, f.Time)
	mergeString(&out.Attendees, f.Attendees)
	mergeString(&out.TopicsDiscussed, f.TopicsDiscussed)
	mergeString(&out.MaterialsShared, f.MaterialsShared)
	mergeString(&out.SamplesDistributed, f.SamplesDistributed)
	mergeString(&out.OccurredAt, f.OccurredAt)
	mergeString(&out.Sentiment, f.Sentiment)
	mergeString(&out.ProductsDiscussed, f.ProductsDiscussed)
	mergeString(&out.Summary, f.Summary)
	mergeString(&out.Outcomes, f.Outcomes)
	mergeString(&out.FollowUps, f.FollowUps)

	if f.ConsentRequired != nil {
		out.ConsentRequired = *f.ConsentRequired
	}
	if f.UsedVoiceNote != nil {
		out.UsedVoiceNote = *f.UsedVoiceNote
	}

	return out
}

// MergeRaw decodes an extractor mapping and merges it.
func MergeRaw(draft Draft, parsed map[string]any) Draft {
	return Merge(draft, DecodeDelta(parsed))
}

func mergeString(dst *string, src *string) {
	if src == nil || strings.TrimSpace(*src) == "" {
		return
	}
	*dst = *src
}
