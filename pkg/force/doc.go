// Package force implements the physics layout engine: five force
// contributions composed by a velocity-Verlet-style integrator.
//
// # Overview
//
// A [Simulation] owns the alpha schedule and applies its forces once per
// [Simulation.Step]:
//
//	alpha += (alphaTarget - alpha) * alphaDecay
//	center → gravity → link → charge → collide
//	v *= 1 - velocityDecay; p += v        (unpinned nodes)
//	p = pin; v = 0                        (pinned nodes)
//
// Forces that act on velocities (link, charge, collide) see the velocities
// accumulated by the forces before them, so collide corrects the overlap
// that link and charge would introduce in the same tick. Forces that act on
// positions (center, gravity) never move a pinned node.
//
// # Forces
//
//   - [Charge]: pairwise inverse-distance repulsion, Barnes-Hut approximated
//   - [Center]: multiplicative pull toward the origin
//   - [Collide]: iterative overlap relaxation on predicted positions
//   - [Link]: springs whose strength depends on whether both ends share a group
//   - [Gravity]: pull toward the centroid of each node's group
//
// # Degenerate Geometry
//
// No force ever produces a non-finite value. Coincident node pairs and
// zero-length links contribute nothing, and the integrator drops any
// non-finite velocity before it can reach a position. One NaN would
// otherwise spread through every pairwise computation of the next tick.
//
// # Genesis
//
// [Simulation.Genesis] advances the layout synchronously before the first
// paint so the graph does not visibly pop in from its seed positions. After
// genesis the alpha target drops to a small steady-state value: the layout
// settles but stays live for later interaction.
package force
