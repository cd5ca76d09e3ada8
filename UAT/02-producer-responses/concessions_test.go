package concessions_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	stuntdouble "github.com/mclancy96/stuntdouble"
	concessions "github.com/mclancy96/stuntdouble/UAT/02-producer-responses"
	"github.com/mclancy96/stuntdouble/respond"
)

func TestRingUp_ProducerComputesFromArgs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	register := stuntdouble.NewDouble(t, "Register", stuntdouble.Stubs{
		"total": respond.From(func(args ...any) (any, error) {
			sum := 0.0
			for _, arg := range args {
				price, ok := arg.(float64)
				if !ok {
					return nil, errors.New("non-float price")
				}

				sum += price
			}

			return sum, nil
		}),
		"printReceipt": respond.Zero(),
	})

	total, err := concessions.RingUp(register, 4.5, 6.0, 2.25)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(total).To(Equal(12.75))
}

func TestRingUp_PlainFuncStubIsAProducer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	register := stuntdouble.NewDouble(t, "Register")
	register.Stub("total", func(args ...any) any {
		return float64(len(args)) * 5.0
	})
	register.Stub("printReceipt", nil)

	total, err := concessions.RingUp(register, "popcorn", "soda")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(total).To(Equal(10.0))
}

func TestNextTicketNumber_SequenceAdvancesPerCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	register := stuntdouble.NewDouble(t, "Register", stuntdouble.Stubs{
		"nextTicket": respond.Sequence(101, 102),
	})

	first, err := concessions.NextTicketNumber(register)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(first).To(Equal(101))

	second, err := concessions.NextTicketNumber(register)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(second).To(Equal(102))

	_, err = concessions.NextTicketNumber(register)
	g.Expect(err).To(MatchError(ContainSubstring("sequence exhausted")))
}

func TestRingUp_ProducerFailureSurfaces(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	tillJammed := errors.New("till jammed")
	register := stuntdouble.NewDouble(t, "Register", stuntdouble.Stubs{
		"total": respond.Error(tillJammed),
	})

	_, err := concessions.RingUp(register, 4.5)

	g.Expect(err).To(MatchError(tillJammed))
	g.Expect(err.Error()).To(ContainSubstring(`producer for "total"`))
}

func TestRingUp_RestubReplacesProducer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	register := stuntdouble.NewDouble(t, "Register", stuntdouble.Stubs{
		"total":        respond.Error(errors.New("till jammed")),
		"printReceipt": respond.Zero(),
	})
	register.Stub("total", respond.Always(9.99))

	total, err := concessions.RingUp(register, 4.5)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(total).To(Equal(9.99))
}

func TestRegisters_ProducersDoNotLeakBetweenDoubles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	lobby := stuntdouble.NewDouble(t, "Lobby Register", stuntdouble.Stubs{
		"nextTicket": respond.Sequence(1, 2),
	})
	balcony := stuntdouble.NewDouble(t, "Balcony Register", stuntdouble.Stubs{
		"nextTicket": respond.Sequence(500),
	})

	first, err := concessions.NextTicketNumber(lobby)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(first).To(Equal(1))

	balconyFirst, err := concessions.NextTicketNumber(balcony)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(balconyFirst).To(Equal(500), "each double keeps its own counter")
}
