// Package realtime implementa la capa de difusión en vivo: tópicos tipados,
// un hub pub/sub en proceso y el sobre de eventos que viaja por WebSocket.
package realtime

import "fmt"

// TopicKind identifica la clase de recurso de un tópico. Los tópicos se
// construyen solo con los constructores de abajo: un tópico mal formado es un
// error de compilación, no un string a parsear.
type TopicKind int

const (
	TopicJob TopicKind = iota + 1
	TopicDashboard
	TopicNotification
	TopicSubstitution
)

func (k TopicKind) String() string {
	switch k {
	case TopicJob:
		return "job"
	case TopicDashboard:
		return "dashboard"
	case TopicNotification:
		return "notification"
	case TopicSubstitution:
		return "substitution"
	}
	return "unknown"
}

// Topic es la clave de un grupo de difusión. Valor comparable: sirve
// directamente como clave de mapa en el hub.
type Topic struct {
	Kind TopicKind
	Key  string
}

func (t Topic) String() string {
	return fmt.Sprintf("%s:%s", t.Kind, t.Key)
}

// JobTopic tópico de un trabajo de producción.
func JobTopic(jobID string) Topic {
	return Topic{Kind: TopicJob, Key: jobID}
}

// DashboardTopic tópico de un tablero, con alcance (tipo de tablero, usuario).
func DashboardTopic(dashboardKind, userID string) Topic {
	return Topic{Kind: TopicDashboard, Key: dashboardKind + "/" + userID}
}

// NotificationTopic tópico del feed de notificaciones de un usuario.
func NotificationTopic(userID string) Topic {
	return Topic{Kind: TopicNotification, Key: userID}
}

// SubstitutionTopic tópico de una solicitud de sustitución de material.
func SubstitutionTopic(substitutionID string) Topic {
	return Topic{Kind: TopicSubstitution, Key: substitutionID}
}
