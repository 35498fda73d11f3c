package estimator

import "github.com/icub-wbd/wbcore/pkg/wbd/types"

// TactileSource delivers one skin frame per call, already split by body
// part. ok is false when no frame has arrived since the previous call (a
// distinct condition from an arrived-but-empty frame, which reports
// ok=true with an empty map).
type TactileSource interface {
	ReadFrame() (frame map[string][]types.ContactPoint, ok bool, err error)
}

// fixupContacts applies the within-body-part contact rules: a contact
// whose active taxel count does not clear minTaxel is dropped; in a body
// part with more than one surviving contact, any contact below 10 active
// taxels has its moment zeroed (its localization is trusted for force but
// not for the lever arm implied by a sparse few taxels).
func fixupContacts(contacts []types.ContactPoint, minTaxel int) []types.ContactPoint {
	out := make([]types.ContactPoint, 0, len(contacts))
	for _, c := range contacts {
		if c.ActiveTaxelCount <= minTaxel {
			continue
		}
		out = append(out, c)
	}
	if len(out) > 1 {
		for i := range out {
			if out[i].ActiveTaxelCount < 10 {
				out[i].Wrench[3] = 0
				out[i].Wrench[4] = 0
				out[i].Wrench[5] = 0
			}
		}
	}
	return out
}
