package catalog

import "github.com/microcosm-cc/bluemonday"

// snapshotPolicy strips every HTML element from seller-supplied text. Text
// content survives with entities escaped, so titles render safely in any
// shell without a second sanitization pass.
var snapshotPolicy = bluemonday.StrictPolicy()

// Snapshot returns a deep copy of p with seller-supplied text fields
// stripped of HTML. The copy shares no slices with the input; cart lines
// keep these snapshots across catalog updates.
func Snapshot(p Product) Product {
	out := p
	out.Title = snapshotPolicy.Sanitize(p.Title)
	out.Description = snapshotPolicy.Sanitize(p.Description)
	out.Category = snapshotPolicy.Sanitize(p.Category)

	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		out.Tags = make([]string, len(p.Tags))
		for i, tag := range p.Tags {
			out.Tags[i] = snapshotPolicy.Sanitize(tag)
		}
	}
	return out
}
