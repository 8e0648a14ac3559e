package version

// Values are injected at link time using
// -ldflags "-X github.com/mamuesp-libs/ledeffects-symmetric-bar/version.GitHash=..."
var (
	BuildTime string
	GitHash   string
)
