package graph

const (
	// Link strengths handed to the layout
	directLinkStrength          = 1.0
	defaultIndirectLinkStrength = 0.1

	// Person nodes other than the focal person are drawn at half size
	peerSizeFactor = 0.5
)
