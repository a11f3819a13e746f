package objmodel

import "fmt"

// Edge is one impact relationship: Source impacts Impacted. Both ends are
// global identifiers.
type Edge struct {
	Source   string
	Impacted string
}

// RelationshipDataProvider contributes impact edges for an object
type RelationshipDataProvider interface {
	Edges() ([]Edge, error)
}

// Trigger is an impact trigger attached to a node
type Trigger interface {
	TriggerID() string
}

// NodeTriggersProvider contributes impact triggers for an object
type NodeTriggersProvider interface {
	Triggers() ([]Trigger, error)
}

// ImpactsFor returns the ids of objects impacted by thing and the ids of
// objects impacting thing, gathered from every provider's edges.
func ImpactsFor(thing Object, guids GUIDManager, providers []RelationshipDataProvider) (impactedBy, impacting []string, err error) {
	self, err := guids.GUID(thing)
	if err != nil {
		return nil, nil, err
	}

	impactedBy = make([]string, 0)
	impacting = make([]string, 0)

	for _, provider := range providers {
		edges, err := provider.Edges()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read edges of %s: %w", thing.ID(), err)
		}

		for _, edge := range edges {
			switch self {
			case edge.Source:
				obj, err := guids.Object(edge.Impacted)
				if err != nil {
					return nil, nil, err
				}
				impactedBy = append(impactedBy, obj.ID())
			case edge.Impacted:
				obj, err := guids.Object(edge.Source)
				if err != nil {
					return nil, nil, err
				}
				impacting = append(impacting, obj.ID())
			}
		}
	}
	return impactedBy, impacting, nil
}

// TriggersFor returns every trigger for thing keyed by trigger id. A later
// provider overrides an earlier one with the same id.
func TriggersFor(thing Object, providers []NodeTriggersProvider) (map[string]Trigger, error) {
	triggers := make(map[string]Trigger)
	for _, provider := range providers {
		list, err := provider.Triggers()
		if err != nil {
			return nil, fmt.Errorf("failed to read triggers of %s: %w", thing.ID(), err)
		}
		for _, trigger := range list {
			triggers[trigger.TriggerID()] = trigger
		}
	}
	return triggers, nil
}
