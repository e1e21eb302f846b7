package content

import (
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// Static serves a catalog loaded once at startup. Question sets are built
// up front so every request sees the same immutable slices.
type Static struct {
	sets    map[types.Industry]*model.QuestionSet
	content *model.CannedContent
}

var _ interfaces.ContentProvider = &Static{}

// New builds the question sets of every known industry from catalog
func New(catalog *model.Catalog) *Static {
	s := &Static{
		sets:    make(map[types.Industry]*model.QuestionSet),
		content: catalog.Content,
	}
	for _, industry := range types.AllIndustries() {
		s.sets[industry] = catalog.QuestionSet(industry)
	}
	return s
}

// QuestionSet returns the set of industry. Unknown industries get the general set.
func (s *Static) QuestionSet(industry types.Industry) *model.QuestionSet {
	if set, ok := s.sets[industry.Normalize()]; ok {
		return set
	}
	return s.sets[types.IndustryGeneral]
}

// Content returns the canned result content
func (s *Static) Content() *model.CannedContent {
	return s.content
}
