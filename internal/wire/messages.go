package wire

// Dispatch command names carried in DispatchMessage.
const (
	// CommandExecuteTask asks a robot to run one pick-and-deliver task.
	CommandExecuteTask = "EXECUTE_TASK"
	// CommandRestock adds stock to a shelf, immediately and authoritatively.
	CommandRestock = "RESTOCK"
)

// CommandStallCompensation names archive records for stall recoveries that
// emitted no refund: the order was requeued and the station released, but
// no RESTOCK went out on the bus. Never published as a dispatch.
const CommandStallCompensation = "STALL_COMPENSATION"

// OverrideForceCharge is the only override task the monitor can request.
const OverrideForceCharge = "FORCE_CHARGE"

// RobotStatus is the per-tick status report a robot publishes, and the
// payload the gateway forwards unchanged onto the internal hierarchy.
type RobotStatus struct {
	RobotID    string `json:"robot_id"`
	Timestamp  string `json:"timestamp"`
	LocationID string `json:"location_id"`
	Battery    int    `json:"battery"`
	Status     string `json:"status"`
}

// ShelfStatus is the raw shelf sensor report. The gateway converts Stock to
// kilograms before forwarding and keeps the original value alongside.
type ShelfStatus struct {
	AssetID string  `json:"asset_id"`
	Type    string  `json:"type"`
	ItemID  string  `json:"item_id"`
	Stock   float64 `json:"stock"`
	Unit    string  `json:"unit"`

	// Set by the gateway on the internal hierarchy only.
	OriginalStock *float64 `json:"original_stock,omitempty"`
	OriginalUnit  string   `json:"original_unit,omitempty"`
}

// DispatchMessage is a dispatch or restock intent on the dispatch topic.
// RESTOCK intents emitted by the coordinator's refill and compensation paths
// omit the robot and station fields.
type DispatchMessage struct {
	RobotID         string `json:"robot_id,omitempty"`
	Command         string `json:"command"`
	TargetShelfID   string `json:"target_shelf_id"`
	TargetStationID string `json:"target_station_id,omitempty"`
	Quantity        int    `json:"quantity"`
}

// OrderIntake is the external order submission payload (UDP or HTTP).
type OrderIntake struct {
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	PackStation string `json:"pack_station"`
	OrderID     string `json:"order_id"`
}

// Override is the monitor's override request, delivered to the gateway.
type Override struct {
	RobotID      string `json:"robot_id"`
	Level        string `json:"level"`
	OverrideTask string `json:"override_task"`
}
