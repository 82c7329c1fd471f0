package adloom

import "github.com/sarthak567/adloom/id"

// ID is the identifier type for operations and snapshot revisions.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
