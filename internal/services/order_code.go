package services

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// OrderCodeGenerator produces human-facing order codes.
type OrderCodeGenerator interface {
	NextCode() string
}

// SnowflakeCodeGenerator derives codes from snowflake ids, which are time
// ordered and unique per node.
type SnowflakeCodeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeCodeGenerator creates a generator for the given node (0-1023).
func NewSnowflakeCodeGenerator(nodeID int64) (*SnowflakeCodeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeCodeGenerator{node: node}, nil
}

// NextCode returns a code such as KM-1541815603606036480.
func (g *SnowflakeCodeGenerator) NextCode() string {
	return "KM-" + g.node.Generate().String()
}
