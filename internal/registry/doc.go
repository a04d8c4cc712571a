// Package registry defines the metadata registry: the four categories that
// describe known metadata types, child-type relations, suffix-to-type
// mappings and strict directory-name rules. It provides the category-wise
// Merge primitive, decoding and shape validation of registry documents, the
// embedded baseline registry, and the immutable Effective registry handed to
// downstream consumers.
package registry
