// Package assets bundles the sample keypoint sources shipped with the viewer.
package assets

import "embed"

//go:embed *.json
var FS embed.FS
