// Package fieldservice holds the persisted pest-control appointment model: projects,
// appointments, and the per-visit records hanging off each appointment.
package fieldservice
