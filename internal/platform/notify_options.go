package platform

// Options carries optional notification attributes.
type Options struct {
	IconPath string
}
