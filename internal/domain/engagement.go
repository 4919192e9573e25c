package domain

// EngagementKind identifies which counter an engagement event touches.
type EngagementKind string

const (
	EngagementLike    EngagementKind = "like"
	EngagementComment EngagementKind = "comment"
	EngagementShare   EngagementKind = "share"
)

func (k EngagementKind) Valid() bool {
	switch k {
	case EngagementLike, EngagementComment, EngagementShare:
		return true
	}
	return false
}
