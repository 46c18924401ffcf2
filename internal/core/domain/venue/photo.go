package venue

// PhotoSource records which tier of the resolution chain produced a photo,
// so a later upgrade from a free source to a paid one stays traceable.
type PhotoSource string

const (
	PhotoSourceUpstream PhotoSource = "resy"
	PhotoSourcePlaces   PhotoSource = "google_places"
)

// PhotoRecord is the cached photo payload shared by the memory tier and the
// persistent tier. The persistent tier (keyed by venue id) is the durability
// of record; the memory tier (keyed by id+name) is a process-local
// accelerator with no independent expiry.
type PhotoRecord struct {
	PhotoURL     string      `json:"photoUrl"`
	PhotoURLs    []string    `json:"photoUrls"`
	PlaceName    string      `json:"placeName"`
	PlaceAddress string      `json:"placeAddress"`
	Source       PhotoSource `json:"source,omitempty"`
}

// PhotoCacheKey is the composite memory-tier key.
func PhotoCacheKey(venueID, venueName string) string {
	return venueID + "_" + venueName
}
