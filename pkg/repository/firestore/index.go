package firestore

import "github.com/m-mizutani/fireconf"

// IndexConfig returns the composite indexes the repository queries need,
// with collection names resolved for prefix
func IndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: collectionName(prefix, leadsCollection),
				Indexes: []fireconf.Index{
					// List with WithLeadStep: step ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "step", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
