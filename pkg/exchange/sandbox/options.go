package sandbox

type Option func(*Simulator)

func WithSlippageModel(model SlippageModel) Option {
	return func(s *Simulator) {
		s.slippage = model
	}
}

func WithCommissionModel(model CommissionModel) Option {
	return func(s *Simulator) {
		s.commission = model
	}
}
