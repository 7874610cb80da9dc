// Package domain defines the value types of the equipment-fitting core:
// deformation configs, attachment slots, asset references, and the transient
// weapon-mode state. All types use immutable snapshot semantics; mutation
// happens only through the fitting store.
package domain
