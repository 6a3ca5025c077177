package eventlog

import "residue/internal/model"

// highRiskEventIDs are event codes tied to account, session, and
// log-integrity activity: logon success/failure, explicit-credential
// logon, account creation/deletion, and audit-log clearing.
var highRiskEventIDs = map[string]bool{
	"4624": true, // logon success
	"4625": true, // logon failure
	"4648": true, // logon with explicit credentials
	"4720": true, // account created
	"4726": true, // account deleted
	"1102": true, // audit log cleared
}

// mediumRiskEventIDs cover group-membership enumeration, shutdown,
// and event-log service start/stop.
var mediumRiskEventIDs = map[string]bool{
	"4798": true, // local group membership enumerated
	"4799": true, // security group membership enumerated
	"1074": true, // system shutdown initiated
	"6005": true, // event log service started
	"6006": true, // event log service stopped
}

// ClassifyPrivacyRisk maps an event ID onto the fixed three-tier
// scale. The mapping is pure: the same ID always yields the same tier.
func ClassifyPrivacyRisk(eventID string) model.PrivacyRisk {
	switch {
	case highRiskEventIDs[eventID]:
		return model.PrivacyRiskHigh
	case mediumRiskEventIDs[eventID]:
		return model.PrivacyRiskMedium
	default:
		return model.PrivacyRiskLow
	}
}

// allowlistedEventIDs returns every event ID the miner queries for.
func allowlistedEventIDs() []string {
	ids := make([]string, 0, len(highRiskEventIDs)+len(mediumRiskEventIDs))
	// Fixed order keeps the generated XPath query stable.
	for _, id := range []string{"4624", "4625", "4648", "4720", "4726", "1102", "4798", "4799", "1074", "6005", "6006"} {
		ids = append(ids, id)
	}
	return ids
}
