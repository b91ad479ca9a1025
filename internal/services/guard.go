package services

import "github.com/budhip/go-autosave/internal/models"

// LinkedJournals is the idempotency snapshot for one run: every journal id
// that appears on either end of any existing link, regardless of link type.
// A journal with any link at all is considered already handled; that is
// deliberately conservative to avoid double-saving. The snapshot is built
// once at run start and never refreshed mid-run.
type LinkedJournals map[int64]struct{}

func NewLinkedJournals(links []models.Link) LinkedJournals {
	set := make(LinkedJournals, len(links)*2)
	for _, link := range links {
		if link.InwardID != 0 {
			set[link.InwardID] = struct{}{}
		}
		if link.OutwardID != 0 {
			set[link.OutwardID] = struct{}{}
		}
	}
	return set
}

func (s LinkedJournals) IsLinked(journalID int64) bool {
	_, ok := s[journalID]
	return ok
}
