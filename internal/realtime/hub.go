package realtime

import (
	"sync"

	"github.com/tu-usuario/imprenta-pro/pkg/logger"
)

// tamaño del buffer por suscripción: una conexión lenta acumula hasta aquí
// antes de empezar a perder los eventos más viejos.
const subscriptionBuffer = 16

// Subscription es la membresía de una conexión en un tópico. C entrega los
// eventos difundidos al tópico; se cierra al cancelar la suscripción.
type Subscription struct {
	topic Topic
	ch    chan Event
}

// C devuelve el canal de recepción de eventos.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Topic devuelve el tópico al que pertenece la suscripción.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Hub es el registro pub/sub del proceso. Se construye una vez en el arranque
// y se inyecta a los handlers de conexión; no hay estado global.
//
// La entrega es fan-out sobre colas independientes por suscripción: dos
// difusiones al mismo tópico desde productores distintos pueden observarse en
// distinto orden por distintos suscriptores. Un suscriptor lento pierde el
// evento pendiente más viejo (se registra en warn) en lugar de bloquear al
// productor.
type Hub struct {
	mu     sync.RWMutex
	groups map[Topic]map[*Subscription]struct{}
	log    *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		groups: make(map[Topic]map[*Subscription]struct{}),
		log:    log,
	}
}

// Subscribe une una conexión al grupo del tópico y devuelve su suscripción.
func (h *Hub) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan Event, subscriptionBuffer)}

	h.mu.Lock()
	group, ok := h.groups[topic]
	if !ok {
		group = make(map[*Subscription]struct{})
		h.groups[topic] = group
	}
	group[sub] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("topic", topic.String()).Msg("suscripción creada")
	return sub
}

// Unsubscribe retira la suscripción del grupo y cierra su canal. Es idempotente:
// los handlers la difieren y puede ejecutarse también en cierres anormales.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	group, ok := h.groups[sub.topic]
	if ok {
		if _, member := group[sub]; member {
			delete(group, sub)
			close(sub.ch)
		}
		if len(group) == 0 {
			delete(h.groups, sub.topic)
		}
	}
	h.mu.Unlock()

	h.log.Debug().Str("topic", sub.topic.String()).Msg("suscripción retirada")
}

// Broadcast difunde el evento a todos los suscriptores actuales del tópico.
// Nunca bloquea: si la cola de un suscriptor está llena se descarta su evento
// pendiente más viejo para hacer lugar.
func (h *Hub) Broadcast(topic Topic, event Event) {
	// Los envíos ocurren bajo el read-lock: Unsubscribe cierra canales bajo el
	// write-lock, así que aquí ningún canal puede cerrarse a mitad de envío.
	// Ningún envío bloquea, de modo que el lock se mantiene un instante.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.groups[topic] {
		select {
		case sub.ch <- event:
		default:
			// cola llena: descartar el más viejo y reintentar una vez
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- event:
			default:
			}
			h.log.Warn().
				Str("topic", topic.String()).
				Str("event", event.Type).
				Msg("suscriptor lento: se descartó el evento pendiente más viejo")
		}
	}
}

// Subscribers devuelve cuántas conexiones hay unidas al tópico (para métricas
// y tests).
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[topic])
}
