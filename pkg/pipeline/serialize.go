package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/synforge/routecluster/pkg/chem"
	"github.com/synforge/routecluster/pkg/cluster"
	"github.com/synforge/routecluster/pkg/graphio"
)

// Cache blob formats for the three pipeline stages. These are internal to
// the runner; a decode failure is treated as a cache miss and the stage is
// recomputed.

type clusterBlob struct {
	ID             string         `json:"id"`
	RouteIDs       []string       `json:"route_ids"`
	Representative *graphio.Graph `json:"representative"`
}

type reactionBlob struct {
	Reactants []*graphio.Graph `json:"reactants"`
	Products  []*graphio.Graph `json:"products"`
}

type subgroupBlob struct {
	Structure  *graphio.Graph              `json:"structure"`
	Points     []chem.AttachPoint          `json:"points,omitempty"`
	RouteIDs   []string                    `json:"route_ids"`
	RoutesData map[string][]*graphio.Graph `json:"routes_data,omitempty"`
	Processed  bool                        `json:"processed"`
	Reaction   *reactionBlob               `json:"reaction,omitempty"`
	GroupLGs   map[string][]string         `json:"group_lgs,omitempty"`
}

// MarshalRoutes encodes a route set for caching.
func MarshalRoutes(m cluster.RouteMap) ([]byte, error) {
	out := make(map[string]*graphio.Graph, len(m))
	for _, id := range m.RouteIDs() {
		out[string(id)] = graphio.Encode(m[id])
	}
	return json.Marshal(out)
}

// UnmarshalRoutes decodes a cached route set.
func UnmarshalRoutes(data []byte) (cluster.RouteMap, error) {
	var raw map[string]*graphio.Graph
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(cluster.RouteMap, len(raw))
	for id, d := range raw {
		g, err := d.Decode()
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", id, err)
		}
		out[cluster.RouteID(id)] = g
	}
	return out, nil
}

// MarshalClusters encodes a clustering result for caching. Strategic bonds
// are not stored; they are recomputed from the representative on decode.
func MarshalClusters(clusters map[string]*cluster.Cluster) ([]byte, error) {
	out := make(map[string]clusterBlob, len(clusters))
	for id, c := range clusters {
		out[id] = clusterBlob{
			ID:             c.ID,
			RouteIDs:       routeIDStrings(c.RouteIDs),
			Representative: graphio.Encode(c.Representative),
		}
	}
	return json.Marshal(out)
}

// UnmarshalClusters decodes a cached clustering result.
func UnmarshalClusters(data []byte) (map[string]*cluster.Cluster, error) {
	var raw map[string]clusterBlob
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]*cluster.Cluster, len(raw))
	for id, blob := range raw {
		rep, err := blob.Representative.Decode()
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", id, err)
		}
		c := &cluster.Cluster{
			ID:             blob.ID,
			Representative: rep,
			RouteIDs:       routeIDs(blob.RouteIDs),
		}
		if rep != nil {
			c.StrategicBonds = rep.StrategicBonds()
		}
		out[id] = c
	}
	return out, nil
}

// MarshalSubgroups encodes a subcluster result for caching.
func MarshalSubgroups(subgroups map[string]map[string]*cluster.Subgroup) ([]byte, error) {
	out := make(map[string]map[string]subgroupBlob, len(subgroups))
	for cid, subs := range subgroups {
		inner := make(map[string]subgroupBlob, len(subs))
		for key, sg := range subs {
			blob := subgroupBlob{
				Structure: graphio.Encode(sg.SynthonStructure),
				Points:    sg.AttachPoints,
				RouteIDs:  routeIDStrings(sg.RouteIDs),
				Processed: sg.Processed,
			}
			if sg.RoutesData != nil {
				blob.RoutesData = make(map[string][]*graphio.Graph, len(sg.RoutesData))
				for rid, lgs := range sg.RoutesData {
					encoded := make([]*graphio.Graph, len(lgs))
					for i, lg := range lgs {
						encoded[i] = graphio.Encode(lg)
					}
					blob.RoutesData[string(rid)] = encoded
				}
			}
			if sg.SynthonReaction != nil {
				blob.Reaction = &reactionBlob{
					Reactants: encodeGraphs(sg.SynthonReaction.Reactants),
					Products:  encodeGraphs(sg.SynthonReaction.Products),
				}
			}
			if sg.GroupLGs != nil {
				blob.GroupLGs = make(map[string][]string, len(sg.GroupLGs))
				for k, members := range sg.GroupLGs {
					blob.GroupLGs[string(k)] = routeIDStrings(members)
				}
			}
			inner[key] = blob
		}
		out[cid] = inner
	}
	return json.Marshal(out)
}

// UnmarshalSubgroups decodes a cached subcluster result.
func UnmarshalSubgroups(data []byte) (map[string]map[string]*cluster.Subgroup, error) {
	var raw map[string]map[string]subgroupBlob
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]*cluster.Subgroup, len(raw))
	for cid, inner := range raw {
		subs := make(map[string]*cluster.Subgroup, len(inner))
		for key, blob := range inner {
			sg := &cluster.Subgroup{
				AttachPoints: blob.Points,
				RouteIDs:     routeIDs(blob.RouteIDs),
				Processed:    blob.Processed,
			}
			structure, err := blob.Structure.Decode()
			if err != nil {
				return nil, fmt.Errorf("subgroup %s/%s: %w", cid, key, err)
			}
			sg.SynthonStructure = structure
			if blob.RoutesData != nil {
				sg.RoutesData = make(map[cluster.RouteID][]*chem.Graph, len(blob.RoutesData))
				for rid, encoded := range blob.RoutesData {
					lgs := make([]*chem.Graph, len(encoded))
					for i, d := range encoded {
						if lgs[i], err = d.Decode(); err != nil {
							return nil, fmt.Errorf("subgroup %s/%s route %s: %w", cid, key, rid, err)
						}
					}
					sg.RoutesData[cluster.RouteID(rid)] = lgs
				}
			}
			if blob.Reaction != nil {
				reactants, err := decodeGraphs(blob.Reaction.Reactants)
				if err != nil {
					return nil, fmt.Errorf("subgroup %s/%s: %w", cid, key, err)
				}
				products, err := decodeGraphs(blob.Reaction.Products)
				if err != nil {
					return nil, fmt.Errorf("subgroup %s/%s: %w", cid, key, err)
				}
				rxn := chem.BuildReaction(reactants, products)
				rxn.Clean2D()
				sg.SynthonReaction = rxn
			}
			if blob.GroupLGs != nil {
				sg.GroupLGs = make(map[cluster.RouteID][]cluster.RouteID, len(blob.GroupLGs))
				for k, members := range blob.GroupLGs {
					sg.GroupLGs[cluster.RouteID(k)] = routeIDs(members)
				}
			}
			subs[key] = sg
		}
		out[cid] = subs
	}
	return out, nil
}

func encodeGraphs(graphs []*chem.Graph) []*graphio.Graph {
	out := make([]*graphio.Graph, len(graphs))
	for i, g := range graphs {
		out[i] = graphio.Encode(g)
	}
	return out
}

func decodeGraphs(docs []*graphio.Graph) ([]*chem.Graph, error) {
	out := make([]*chem.Graph, len(docs))
	for i, d := range docs {
		g, err := d.Decode()
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func routeIDStrings(ids []cluster.RouteID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func routeIDs(ids []string) []cluster.RouteID {
	out := make([]cluster.RouteID, len(ids))
	for i, id := range ids {
		out[i] = cluster.RouteID(id)
	}
	return out
}
