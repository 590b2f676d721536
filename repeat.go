package rex

// Times matches exactly n consecutive occurrences of x. Applying Times to
// an already exactly-repeated expression multiplies the counts, so
// x.Times(2).Times(3) is x{6}.
func (x *Expr) Times(n int) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	if n < 0 {
		return invalid(newError(CodeInvalidRepetition, "repetition count must be nonnegative; got %d", n))
	}
	if x.kind == KindRepeat {
		return &Expr{kind: KindRepeat, sub: x.sub, m: x.m * n}
	}
	return &Expr{kind: KindRepeat, sub: []*Expr{x}, m: n}
}

// Optional matches zero or one occurrence of x.
func (x *Expr) Optional() *Expr {
	if x.kind == KindInvalid {
		return x
	}
	return &Expr{kind: KindZeroOrOne, sub: []*Expr{x}}
}

// ZeroOrMore matches any number of occurrences of x, including none.
func (x *Expr) ZeroOrMore() *Expr {
	if x.kind == KindInvalid {
		return x
	}
	return &Expr{kind: KindZeroOrMore, sub: []*Expr{x}}
}

// OneOrMore matches one or more occurrences of x.
func (x *Expr) OneOrMore() *Expr {
	if x.kind == KindInvalid {
		return x
	}
	return &Expr{kind: KindOneOrMore, sub: []*Expr{x}}
}

// Between matches from m to n occurrences of x. Pass Unbounded for n to
// leave the upper bound open.
func (x *Expr) Between(m, n int) *Expr {
	return x.Repeat(m, n, 1)
}

// AtLeast matches m or more occurrences of x.
func (x *Expr) AtLeast(m int) *Expr {
	return x.Repeat(m, Unbounded, 1)
}

// AtMost matches up to n occurrences of x.
func (x *Expr) AtMost(n int) *Expr {
	return x.Repeat(0, n, 1)
}

// Repeat matches between start and stop occurrences of x, counting in
// increments of step. Pass Unbounded for stop to leave the upper bound
// open. A step above one decomposes into exact blocks: x.Repeat(2, 6, 2)
// matches 2, 4, or 6 copies and nothing in between.
func (x *Expr) Repeat(start, stop, step int) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	if start < 0 {
		return invalid(newError(CodeInvalidRepetition, "lower repetition bound must be nonnegative; got %d", start))
	}
	if stop != Unbounded && stop < 0 {
		return invalid(newError(CodeInvalidRepetition, "upper repetition bound must be nonnegative or Unbounded; got %d", stop))
	}
	if stop != Unbounded && start > stop {
		return invalid(newError(CodeInvalidRepetition, "repetition bounds are backwards: %d > %d", start, stop))
	}
	if step < 1 {
		return invalid(newError(CodeInvalidRepetition, "repetition step must be positive; got %d", step))
	}
	if step == 1 {
		switch {
		case stop == Unbounded && start == 0:
			return x.ZeroOrMore()
		case stop == Unbounded && start == 1:
			return x.OneOrMore()
		case stop == Unbounded:
			return rangeRepeat(x, start, Unbounded)
		case start == 0 && stop == 1:
			return x.Optional()
		case start == stop:
			return x.Times(start)
		}
		return rangeRepeat(x, start, stop)
	}
	block := x.Times(step)
	if start == 0 {
		if stop == Unbounded {
			return block.ZeroOrMore()
		}
		return rangeRepeat(block, 0, stop/step)
	}
	head := x.Times(start)
	if stop == Unbounded {
		return Seq(head, block.ZeroOrMore())
	}
	return Seq(head, rangeRepeat(block, 0, (stop-start)/step))
}

func rangeRepeat(x *Expr, m, n int) *Expr {
	return &Expr{kind: KindRepeatRange, sub: []*Expr{x}, m: m, n: n}
}
