package parcel

// ParcelStatus is the closed vocabulary of lifecycle states a parcel moves
// through. Values are the French display labels shown by the dashboard and
// stored verbatim in the database.
type ParcelStatus string

const (
	StatusEnAttente        ParcelStatus = "En attente"
	StatusAEnlever         ParcelStatus = "À enlever"
	StatusEnleve           ParcelStatus = "Enlevé"
	StatusAuDepot          ParcelStatus = "Au dépôt"
	StatusEnCours          ParcelStatus = "En cours"
	StatusRTNDepot         ParcelStatus = "RTN dépôt"
	StatusLivres           ParcelStatus = "Livrés"
	StatusLivresPayes      ParcelStatus = "Livrés payés"
	StatusRetourDefinitif  ParcelStatus = "Retour définitif"
	StatusRTNClientDepot   ParcelStatus = "RTN client dépôt"
	StatusRetourExpediteur ParcelStatus = "Retour Expéditeur"
	StatusRetourEnCoursExp ParcelStatus = "Retour En Cours d'expédition"
	StatusRetourRecu       ParcelStatus = "Retour reçu"
)

// Legacy labels still written by the payment flow. They predate the current
// vocabulary and are kept so that payment-created rows stay byte-identical
// with what the dashboard expects.
const (
	StatusRetourLegacy        ParcelStatus = "Retour"
	StatusRetourEnCoursLegacy ParcelStatus = "Retour En Cours"
)

func (s ParcelStatus) String() string {
	return string(s)
}

// IsValid reports whether s belongs to the fixed vocabulary.
func (s ParcelStatus) IsValid() bool {
	switch s {
	case StatusEnAttente, StatusAEnlever, StatusEnleve, StatusAuDepot,
		StatusEnCours, StatusRTNDepot, StatusLivres, StatusLivresPayes,
		StatusRetourDefinitif, StatusRTNClientDepot, StatusRetourExpediteur,
		StatusRetourEnCoursExp, StatusRetourRecu:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no further lifecycle progress is expected.
func (s ParcelStatus) IsFinal() bool {
	switch s {
	case StatusLivresPayes, StatusRetourDefinitif, StatusRetourRecu:
		return true
	default:
		return false
	}
}

// AllParcelStatuses returns the vocabulary in canonical order.
func AllParcelStatuses() []ParcelStatus {
	return []ParcelStatus{
		StatusEnAttente,
		StatusAEnlever,
		StatusEnleve,
		StatusAuDepot,
		StatusEnCours,
		StatusRTNDepot,
		StatusLivres,
		StatusLivresPayes,
		StatusRetourDefinitif,
		StatusRTNClientDepot,
		StatusRetourExpediteur,
		StatusRetourEnCoursExp,
		StatusRetourRecu,
	}
}

// OrderIndex returns the position of s in the canonical order, or -1 when s
// is not part of the vocabulary. Used by the timeline reconstructor to decide
// which milestones a parcel has already passed.
func OrderIndex(s ParcelStatus) int {
	for i, status := range AllParcelStatuses() {
		if status == s {
			return i
		}
	}
	return -1
}

// StatusDisplay carries the static per-status presentation metadata the
// dashboard renders on each timeline step.
type StatusDisplay struct {
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Comment string `json:"comment"`
}

// Display returns the presentation metadata for s. The switch is exhaustive
// over the vocabulary; unknown values get a neutral fallback instead of the
// old silent map lookup.
func (s ParcelStatus) Display() StatusDisplay {
	switch s {
	case StatusEnAttente:
		return StatusDisplay{Icon: "⏳", Color: "#f59e0b", Comment: "Colis créé et en attente d'enlèvement"}
	case StatusAEnlever:
		return StatusDisplay{Icon: "📋", Color: "#3b82f6", Comment: "Colis programmé pour enlèvement"}
	case StatusEnleve:
		return StatusDisplay{Icon: "🚚", Color: "#8b5cf6", Comment: "Colis enlevé par le livreur"}
	case StatusAuDepot:
		return StatusDisplay{Icon: "🏭", Color: "#6366f1", Comment: "Colis arrivé au dépôt"}
	case StatusEnCours:
		return StatusDisplay{Icon: "🚛", Color: "#06b6d4", Comment: "Colis en cours de livraison"}
	case StatusRTNDepot:
		return StatusDisplay{Icon: "↩️", Color: "#f97316", Comment: "Colis retourné au dépôt"}
	case StatusLivres:
		return StatusDisplay{Icon: "✅", Color: "#22c55e", Comment: "Colis livré au destinataire"}
	case StatusLivresPayes:
		return StatusDisplay{Icon: "💰", Color: "#16a34a", Comment: "Colis livré et payé"}
	case StatusRetourDefinitif:
		return StatusDisplay{Icon: "🔙", Color: "#dc2626", Comment: "Retour définitif à l'expéditeur"}
	case StatusRTNClientDepot:
		return StatusDisplay{Icon: "🏪", Color: "#ea580c", Comment: "Retour client au dépôt"}
	case StatusRetourExpediteur:
		return StatusDisplay{Icon: "📤", Color: "#b91c1c", Comment: "Retour vers l'expéditeur"}
	case StatusRetourEnCoursExp:
		return StatusDisplay{Icon: "🔄", Color: "#c2410c", Comment: "Retour en cours d'expédition"}
	case StatusRetourRecu:
		return StatusDisplay{Icon: "📥", Color: "#991b1b", Comment: "Retour reçu par l'expéditeur"}
	default:
		return StatusDisplay{Icon: "📦", Color: "#6b7280", Comment: string(s)}
	}
}

// PaymentTransition returns the status a parcel takes when a payment is
// recorded against it. Only "Livrés" and the legacy "Retour" react to
// payments; every other status is left untouched (ok == false).
func PaymentTransition(current ParcelStatus) (ParcelStatus, bool) {
	switch current {
	case StatusLivres:
		return StatusLivresPayes, true
	case StatusRetourLegacy:
		return StatusRetourEnCoursLegacy, true
	default:
		return current, false
	}
}

// allowedTransitions is the predecessor table enforced in strict mode. The
// permissive default accepts any write, matching the historical behavior of
// the dashboard where operators can override a status freely.
var allowedTransitions = map[ParcelStatus][]ParcelStatus{
	StatusEnAttente: {StatusAEnlever},
	StatusAEnlever:  {StatusEnleve},
	StatusEnleve:    {StatusAuDepot},
	StatusAuDepot:   {StatusEnCours},
	StatusEnCours:   {StatusRTNDepot, StatusLivres},
	StatusLivres: {
		StatusLivresPayes, StatusRetourDefinitif, StatusRTNClientDepot,
		StatusRetourExpediteur, StatusRetourEnCoursExp, StatusRetourRecu,
	},
	StatusRTNDepot: {
		StatusLivresPayes, StatusRetourDefinitif, StatusRTNClientDepot,
		StatusRetourExpediteur, StatusRetourEnCoursExp, StatusRetourRecu,
	},
}

// CanTransition reports whether moving from one status to another is legal
// under the strict transition table. Writing the same status back is always
// allowed.
func CanTransition(from, to ParcelStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
