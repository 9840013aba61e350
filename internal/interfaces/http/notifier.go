package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// localStarted hora de llegada de la petición. Las entradas de caché escritas antes quedan
// obsoletas tras la mutación; la recarga de la propia mutación es posterior y sigue vigente.
const localStarted = "started"

func stampRequest(now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localStarted, now())
		return c.Next()
	}
}

// notifier publica la invalidación tras una mutación exitosa para que el resto de sesiones
// (y réplicas, vía Kafka) dejen de confiar en la caché. Un fallo al publicar no revierte la
// mutación.
type notifier struct {
	bus    invalidate.Bus
	origin string
	now    func() time.Time
	log    *logger.Logger
}

func newNotifier(bus invalidate.Bus, origin string, now func() time.Time, log *logger.Logger) *notifier {
	return &notifier{bus: bus, origin: origin, now: now, log: log.Component("notifier")}
}

func (n *notifier) publish(c *fiber.Ctx, resource, scope string) {
	if n == nil || n.bus == nil {
		return
	}
	at, ok := c.Locals(localStarted).(time.Time)
	if !ok {
		at = n.now()
	}
	e := invalidate.Event{Resource: resource, Scope: scope, Origin: n.origin, At: at}
	if err := n.bus.Publish(c.Context(), e); err != nil {
		n.log.Warn().Err(err).Str("resource", resource).Msg("no se pudo publicar la invalidación")
	}
}
