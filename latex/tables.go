package latex

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ',
	'i': 'ᵢ', 'j': 'ⱼ', 'n': 'ₙ',
}

var fractions = map[string]string{
	"1/2": "½", "1/3": "⅓", "2/3": "⅔", "1/4": "¼", "3/4": "¾",
	"1/5": "⅕", "2/5": "⅖", "3/5": "⅗", "4/5": "⅘",
	"1/6": "⅙", "5/6": "⅚", "1/7": "⅐", "1/8": "⅛",
	"3/8": "⅜", "5/8": "⅝", "7/8": "⅞", "1/9": "⅑", "1/10": "⅒",
}

var greek = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "upsilon": "υ", "phi": "φ",
	"chi": "χ", "psi": "ψ", "omega": "ω",
	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ",
	"Epsilon": "Ε", "Zeta": "Ζ", "Eta": "Η", "Theta": "Θ",
	"Iota": "Ι", "Kappa": "Κ", "Lambda": "Λ", "Mu": "Μ",
	"Nu": "Ν", "Xi": "Ξ", "Pi": "Π", "Rho": "Ρ",
	"Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ", "Phi": "Φ",
	"Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",
	"varepsilon": "ε", "vartheta": "ϑ", "varpi": "ϖ",
	"varrho": "ϱ", "varsigma": "ς", "varphi": "φ",
}

var symbols = map[string]string{
	// operators
	"times": "×", "div": "÷", "pm": "±", "mp": "∓",
	"cdot": "·", "ast": "∗", "star": "⋆", "circ": "∘",
	"bullet": "•", "oplus": "⊕", "ominus": "⊖", "otimes": "⊗",

	// relations
	"leq": "≤", "geq": "≥", "neq": "≠", "approx": "≈",
	"le": "≤", "ge": "≥", "ne": "≠",
	"equiv": "≡", "sim": "∼", "simeq": "≃", "cong": "≅",
	"propto": "∝", "ll": "≪", "gg": "≫", "prec": "≺",
	"succ": "≻", "subset": "⊂", "supset": "⊃", "subseteq": "⊆",
	"supseteq": "⊇", "in": "∈", "ni": "∋", "notin": "∉",

	// arrows
	"leftarrow": "←", "rightarrow": "→", "leftrightarrow": "↔",
	"Leftarrow": "⇐", "Rightarrow": "⇒", "Leftrightarrow": "⇔",
	"uparrow": "↑", "downarrow": "↓", "updownarrow": "↕",
	"mapsto": "↦", "to": "→", "gets": "←",
	"longrightarrow": "⟶", "longleftarrow": "⟵",

	// sets and logic
	"emptyset": "∅", "varnothing": "∅", "cap": "∩", "cup": "∪",
	"setminus": "∖", "land": "∧", "lor": "∨", "neg": "¬",

	// calculus
	"partial": "∂", "nabla": "∇", "infty": "∞", "aleph": "ℵ",
	"forall": "∀", "exists": "∃", "nexists": "∄",

	// big operators
	"sum": "∑", "prod": "∏", "coprod": "∐", "int": "∫",
	"oint": "∮", "iint": "∬", "iiint": "∭",
	"bigcap": "⋂", "bigcup": "⋃", "bigvee": "⋁", "bigwedge": "⋀",

	// delimiters
	"langle": "⟨", "rangle": "⟩", "lceil": "⌈", "rceil": "⌉",
	"lfloor": "⌊", "rfloor": "⌋", "lbrace": "{", "rbrace": "}",

	"therefore": "∴", "because": "∵", "ldots": "…", "cdots": "⋯",
	"vdots": "⋮", "ddots": "⋱", "prime": "′", "angle": "∠",
	"perp": "⊥", "parallel": "∥", "triangle": "△", "square": "□",
	"diamond": "◇", "hbar": "ℏ", "ell": "ℓ", "wp": "℘",
	"Re": "ℜ", "Im": "ℑ",
}

// Function names are printed upright without their backslash.
var functions = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"sinh": true, "cosh": true, "tanh": true, "coth": true,
	"arcsin": true, "arccos": true, "arctan": true,
	"log": true, "ln": true, "lg": true, "exp": true,
	"lim": true, "liminf": true, "limsup": true,
	"min": true, "max": true, "inf": true, "sup": true,
	"det": true, "dim": true, "ker": true, "hom": true,
	"arg": true, "deg": true, "gcd": true, "mod": true,
}

// Spacing commands left over after substitution. Sizing delimiters such as
// \left( keep only their bracket.
var spacingCommands = map[string]string{
	"quad":  "  ",
	"qquad": "    ",
	"left":  "",
	"right": "",
}

// Runes drawn with operator styling.
const operatorGlyphs = "+-×÷=≠<>≤≥±∓·∗⊕⊖⊗→←↔⇒⇐⇔∈∉⊂⊃∩∪"
