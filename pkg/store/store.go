// Package store persists clustering reports.
//
// A report captures one finished pipeline run: the clusters, their refined
// subgroups, and the options the run was made with. Two backends are
// provided:
//   - file: JSON files in a config directory, for CLI usage
//   - mongo: a MongoDB collection, for the server
//
// # Usage
//
//	st, err := store.NewFileStore("")  // Uses ~/.config/routecluster/reports/
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	rep := store.NewReport("benzocaine", opts)
//	rep.Clusters = store.RecordClusters(clusters, subgroups)
//	if err := st.Set(ctx, rep); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/synforge/routecluster/pkg/cluster"
	"github.com/synforge/routecluster/pkg/graphio"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Options records the pipeline options a report was produced with.
type Options struct {
	Reduce            bool `json:"reduce" bson:"reduce"`
	UseStrategicBonds bool `json:"use_strategic_bonds" bson:"use_strategic_bonds"`
	PostProcess       bool `json:"post_process" bson:"post_process"`
}

// SubgroupRecord is the stored form of a refined subgroup.
type SubgroupRecord struct {
	RouteIDs    []string            `json:"route_ids" bson:"route_ids"`
	Structure   *graphio.Graph      `json:"structure,omitempty" bson:"structure,omitempty"`
	AttachAtoms []int               `json:"attach_atoms,omitempty" bson:"attach_atoms,omitempty"`
	Processed   bool                `json:"processed" bson:"processed"`
	LeavingSets map[string][]string `json:"leaving_sets,omitempty" bson:"leaving_sets,omitempty"`
}

// ClusterRecord is the stored form of one cluster with its subgroups.
type ClusterRecord struct {
	ID             string           `json:"id" bson:"id"`
	RouteIDs       []string         `json:"route_ids" bson:"route_ids"`
	StrategicBonds []graphio.Bond   `json:"strategic_bonds,omitempty" bson:"strategic_bonds,omitempty"`
	Representative *graphio.Graph   `json:"representative,omitempty" bson:"representative,omitempty"`
	Subgroups      []SubgroupRecord `json:"subgroups,omitempty" bson:"subgroups,omitempty"`
}

// Report is one persisted pipeline run.
type Report struct {
	ID         string          `json:"id" bson:"_id"`
	Target     string          `json:"target" bson:"target"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	Options    Options         `json:"options" bson:"options"`
	RouteCount int             `json:"route_count" bson:"route_count"`
	Clusters   []ClusterRecord `json:"clusters,omitempty" bson:"clusters,omitempty"`
}

// Summary is the listing form of a report, without the cluster payload.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	Target     string    `json:"target" bson:"target"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	RouteCount int       `json:"route_count" bson:"route_count"`
}

// Store is the interface for report storage backends.
type Store interface {
	// Get retrieves a report by ID.
	// Returns nil, nil if the report doesn't exist.
	Get(ctx context.Context, id string) (*Report, error)

	// Set stores a report, replacing any existing report with the same ID.
	Set(ctx context.Context, rep *Report) error

	// Delete removes a report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all reports, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewReport creates an empty report with a fresh UUID.
func NewReport(target string, opts Options) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Target:    target,
		CreatedAt: time.Now().UTC(),
		Options:   opts,
	}
}

// RecordClusters converts pipeline results to their stored form. Clusters
// come out in id order; subgroups within a cluster are ordered by their
// member lists, so equal results produce equal records.
func RecordClusters(clusters map[string]*cluster.Cluster, subgroups map[string]map[string]*cluster.Subgroup) []ClusterRecord {
	out := make([]ClusterRecord, 0, len(clusters))
	for _, cid := range cluster.ClusterIDs(clusters) {
		c := clusters[cid]
		rec := ClusterRecord{
			ID:             cid,
			RouteIDs:       routeIDStrings(c.RouteIDs),
			Representative: graphio.Encode(c.Representative),
		}
		for _, b := range c.StrategicBonds {
			rec.StrategicBonds = append(rec.StrategicBonds, graphio.Bond{
				A1: b.A1, A2: b.A2, Order: b.Order, Dynamics: b.Dynamics.String(),
			})
		}
		rec.Subgroups = recordSubgroups(subgroups[cid])
		out = append(out, rec)
	}
	return out
}

func recordSubgroups(subs map[string]*cluster.Subgroup) []SubgroupRecord {
	var out []SubgroupRecord
	for _, sg := range subs {
		rec := SubgroupRecord{
			RouteIDs:  routeIDStrings(sg.RouteIDs),
			Structure: graphio.Encode(sg.SynthonStructure),
			Processed: sg.Processed,
		}
		for _, p := range sg.AttachPoints {
			rec.AttachAtoms = append(rec.AttachAtoms, p.Atom)
		}
		if sg.GroupLGs != nil {
			rec.LeavingSets = make(map[string][]string, len(sg.GroupLGs))
			for key, members := range sg.GroupLGs {
				rec.LeavingSets[string(key)] = routeIDStrings(members)
			}
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return firstRoute(out[i]) < firstRoute(out[j])
	})
	return out
}

func firstRoute(rec SubgroupRecord) string {
	if len(rec.RouteIDs) == 0 {
		return ""
	}
	return rec.RouteIDs[0]
}

func routeIDStrings(ids []cluster.RouteID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
