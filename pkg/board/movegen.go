package board

// GeneratePseudoLegal returns every pseudo-legal move for the side to move, tagged with its
// MoveType. "Pseudo-legal" means every chess rule is honored except king safety: a move that
// leaves (or fails to resolve) the mover's own king in check may still appear here. Use
// GenerateLegal, or filter individual moves with Position.IsLegal, before playing one.
func GeneratePseudoLegal(p *Position) []ScoredMove {
	var moves []ScoredMove
	us := p.turn
	occ := p.Occupied()
	ownOcc := p.colorBB[us]
	enemyOcc := p.colorBB[us.Opponent()]

	moves = genPawnMoves(p, us, occ, enemyOcc, moves)

	for pb := p.pieceBB[us][Knight]; pb != 0; {
		var sq Square
		sq, pb = pb.PopLSB()
		moves = appendTargets(moves, sq, KnightAttackboard(sq)&^ownOcc, enemyOcc)
	}
	for pb := p.pieceBB[us][Bishop]; pb != 0; {
		var sq Square
		sq, pb = pb.PopLSB()
		moves = appendTargets(moves, sq, BishopAttackboard(sq, occ)&^ownOcc, enemyOcc)
	}
	for pb := p.pieceBB[us][Rook]; pb != 0; {
		var sq Square
		sq, pb = pb.PopLSB()
		moves = appendTargets(moves, sq, RookAttackboard(sq, occ)&^ownOcc, enemyOcc)
	}
	for pb := p.pieceBB[us][Queen]; pb != 0; {
		var sq Square
		sq, pb = pb.PopLSB()
		moves = appendTargets(moves, sq, QueenAttackboard(sq, occ)&^ownOcc, enemyOcc)
	}

	kingSq := p.KingSquare(us)
	moves = appendTargets(moves, kingSq, KingAttackboard(kingSq)&^ownOcc, enemyOcc)
	moves = genCastlingMoves(p, us, occ, moves)

	return moves
}

func appendTargets(moves []ScoredMove, from Square, targets, enemyOcc Bitboard) []ScoredMove {
	for targets != 0 {
		var to Square
		to, targets = targets.PopLSB()
		mt := Other
		if enemyOcc.IsSet(to) {
			mt = Capture
		}
		moves = append(moves, ScoredMove{Move: NewMove(from, to), Type: mt})
	}
	return moves
}

var promotionPieces = []Piece{Queen, Rook, Bishop, Knight}

func genPawnMoves(p *Position, us Color, occ, enemyOcc Bitboard, moves []ScoredMove) []ScoredMove {
	promoRank := PawnPromotionRank(us)

	for pb := p.pieceBB[us][Pawn]; pb != 0; {
		var from Square
		from, pb = pb.PopLSB()
		fromBB := BitMask(from)

		attacks := PawnAttackboard(us, fromBB) & enemyOcc
		for a := attacks; a != 0; {
			var to Square
			to, a = a.PopLSB()
			moves = appendPawnTarget(moves, from, to, Capture, promoRank)
		}

		if p.epValid {
			epAttacks := PawnAttackboard(us, fromBB) & BitMask(p.epSquare)
			if epAttacks != 0 {
				moves = append(moves, ScoredMove{Move: NewMove(from, p.epSquare), Type: Capture})
			}
		}

		push := PawnPushboard(us, fromBB, occ)
		for u := push; u != 0; {
			var to Square
			to, u = u.PopLSB()
			moves = appendPawnTarget(moves, from, to, Other, promoRank)

			if fromBB&PawnStartRank(us) != 0 {
				jump := PawnPushboard(us, BitMask(to), occ) & PawnJumpRank(us)
				if jump != 0 {
					jto := jump.LSB()
					moves = append(moves, ScoredMove{Move: NewMove(from, jto), Type: Other})
				}
			}
		}
	}
	return moves
}

func appendPawnTarget(moves []ScoredMove, from, to Square, mt MoveType, promoRank Bitboard) []ScoredMove {
	if promoRank.IsSet(to) {
		for _, promo := range promotionPieces {
			moves = append(moves, ScoredMove{Move: NewPromotion(from, to, promo), Type: Promotion})
		}
		return moves
	}
	moves = append(moves, ScoredMove{Move: NewMove(from, to), Type: mt})
	return moves
}

func genCastlingMoves(p *Position, us Color, occ Bitboard, moves []ScoredMove) []ScoredMove {
	them := us.Opponent()
	if p.IsAttacked(p.KingSquare(us), them) {
		return moves
	}

	tryCastle := func(kingSide bool, right Castling) []ScoredMove {
		if !p.castling.IsAllowed(right) {
			return moves
		}
		for _, sq := range CastlingEmptySquares(us, kingSide) {
			if occ.IsSet(sq) {
				return moves
			}
		}
		for _, sq := range CastlingTransitSquares(us, kingSide) {
			if p.IsAttacked(sq, them) {
				return moves
			}
		}
		from, to := CastlingKingSquares(us, kingSide)
		moves = append(moves, ScoredMove{Move: NewMove(from, to), Type: Other})
		return moves
	}

	moves = tryCastle(true, KingSideRight(us))
	moves = tryCastle(false, QueenSideRight(us))
	return moves
}

// IsLegal reports whether m, assumed pseudo-legal, does not leave the mover's own king in
// check (this also covers the en-passant "skewer" edge case, since the capturing pawn and
// the captured pawn are both removed from the board before the check test). Castling's
// path-attack requirement is enforced during generation, not here.
func (p *Position) IsLegal(m Move) bool {
	us := p.turn
	p.Make(m)
	legal := !p.IsAttacked(p.pieceBB[us][King].LSB(), us.Opponent())
	p.Unmake()
	return legal
}

// GenerateLegal returns every legal move for the side to move, each tagged with its
// MoveType; Check is added retroactively for moves that give check.
func GenerateLegal(p *Position) []ScoredMove {
	pseudo := GeneratePseudoLegal(p)
	legal := make([]ScoredMove, 0, len(pseudo))
	for _, sm := range pseudo {
		if !p.IsLegal(sm.Move) {
			continue
		}
		if sm.Type == Other {
			p.Make(sm.Move)
			inCheck := p.IsCheck()
			p.Unmake()
			if inCheck {
				sm.Type = Check
			}
		}
		legal = append(legal, sm)
	}
	return legal
}

// GenerateTacticalLegal returns the legal captures, promotions, and quiet checks, used by
// quiescence search when the side to move is not in check. Quiet moves are retroactively
// tagged Check the same way GenerateLegal does, by a trial make/unmake, since the horizon
// effect quiescence exists to avoid applies just as much to a missed check as to a missed
// capture. When in check, callers must fall back to GenerateLegal instead: quiescence must
// consider every evasion, not just tactical ones.
func GenerateTacticalLegal(p *Position) []ScoredMove {
	pseudo := GeneratePseudoLegal(p)
	legal := make([]ScoredMove, 0, len(pseudo)/2)
	for _, sm := range pseudo {
		switch sm.Type {
		case Capture, Promotion:
			if !p.IsLegal(sm.Move) {
				continue
			}
			legal = append(legal, sm)
		case Other:
			if !p.IsLegal(sm.Move) {
				continue
			}
			p.Make(sm.Move)
			inCheck := p.IsCheck()
			p.Unmake()
			if inCheck {
				sm.Type = Check
				legal = append(legal, sm)
			}
		}
	}
	return legal
}

// HasLegalMove reports whether the side to move has at least one legal move, without
// allocating a full move list. Used by terminal-position checks in search and by UCI.
func HasLegalMove(p *Position) bool {
	for _, sm := range GeneratePseudoLegal(p) {
		if p.IsLegal(sm.Move) {
			return true
		}
	}
	return false
}

// PieceValue gives the MVV-LVA material weight used for ordering captures; indexed by
// Piece, so PieceValue[NoPiece] is unused (zero).
var PieceValue = [NumPieces]int32{
	NoPiece: 0,
	Pawn:    100,
	Knight:  320,
	Bishop:  330,
	Rook:    500,
	Queen:   900,
	King:    20000,
}

// MVVLVA scores a capture by victim value (most valuable victim first) minus a small
// fraction of the attacker's value (least valuable attacker breaks ties within a victim
// class), per the classical MVV-LVA heuristic.
func MVVLVA(p *Position, m Move) int32 {
	_, attacker, _ := p.Square(m.From)
	victimSq := m.To
	if p.epValid && attacker == Pawn && m.To == p.epSquare && p.mailbox[m.To] == NoPiece {
		victimSq = NewSquare(m.To.File(), m.From.Rank())
	}
	_, victim, _ := p.Square(victimSq)
	return PieceValue[victim]*16 - PieceValue[attacker]
}
