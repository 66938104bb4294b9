package authz

import "shepherd/internal/domain/models"

// CanSeePrayerRequest implements the visibility table:
//
//	role          public  private(own)  private(other)  pastoral
//	admin/pastor  yes     yes           yes             yes
//	member/guest  yes     yes           no              no
//
// Pastoral requests are invisible to members and guests even when they own
// them. Tenant isolation is assumed to have been checked already.
func CanSeePrayerRequest(actor Actor, pr *models.PrayerRequest) bool {
	if actor.Role.Privileged() {
		return true
	}
	switch pr.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityPrivate:
		return actor.ID == pr.UserID
	default: // pastoral
		return false
	}
}

// CheckReadPrayerRequest is the single-read decision. A hidden request is
// denied with a not-found-shaped reason so unauthorized actors cannot tell
// it apart from a request that does not exist.
func CheckReadPrayerRequest(actor Actor, pr *models.PrayerRequest) error {
	if err := CheckTenant(actor, pr.ChurchID); err != nil {
		return err
	}
	if !CanSeePrayerRequest(actor, pr) {
		return deny(ReasonNotVisible, "prayer request not found")
	}
	return nil
}

// FilterPrayerRequests returns the subset of prs the actor may see,
// preserving order. Privileged actors see the full tenant set; everyone
// else sees public requests plus their own.
func FilterPrayerRequests(actor Actor, prs []models.PrayerRequest) []models.PrayerRequest {
	if actor.Role.Privileged() {
		return prs
	}
	visible := make([]models.PrayerRequest, 0, len(prs))
	for i := range prs {
		if CanSeePrayerRequest(actor, &prs[i]) {
			visible = append(visible, prs[i])
		}
	}
	return visible
}
