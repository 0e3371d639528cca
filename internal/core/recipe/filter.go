package recipe

import "ranna-banna/internal/pkg/common"

// FilterEnriched drops recipes without an image, keeping order. It fails with ErrAssetGenerationFailed
// when recipes existed but none survived.
func FilterEnriched(enriched []Recipe) ([]Recipe, error) {
	out := make([]Recipe, 0, len(enriched))
	for _, r := range enriched {
		if r.ImageBase64 != "" {
			out = append(out, r)
		}
	}
	if len(enriched) > 0 && len(out) == 0 {
		return nil, common.ErrAssetGenerationFailed
	}
	return out, nil
}
