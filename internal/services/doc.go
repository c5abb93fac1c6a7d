// Package services holds cross-cutting helpers shared by the identification
// pipeline and its collaborators: request-scoped context values and the
// sentinel errors used for failure classification.
package services
