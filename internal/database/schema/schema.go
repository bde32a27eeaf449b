package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Grow recipes

CREATE TABLE IF NOT EXISTS recipes (
    recipe_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(100) UNIQUE NOT NULL,
    product VARCHAR(100) UNIQUE NOT NULL,
    soak_hours INTEGER NOT NULL DEFAULT 0,
    germination_days INTEGER NOT NULL DEFAULT 0,
    blackout_days INTEGER NOT NULL DEFAULT 0,
    light_days INTEGER NOT NULL DEFAULT 0,
    yield_grams_per_tray DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Orders: recurring templates and generated occurrences share one table.
-- A template has is_recurring = true and parent_id IS NULL; a generated
-- order has is_recurring = false and a non-null parent_id.

CREATE TABLE IF NOT EXISTS orders (
    order_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    parent_id UUID REFERENCES orders(order_id) ON DELETE CASCADE,
    is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
    order_type VARCHAR(50) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    customer VARCHAR(200),

    frequency VARCHAR(20),
    week_interval INTEGER,
    start_date DATE,
    end_date DATE,
    last_generated_at TIMESTAMPTZ,
    next_generation_date DATE,
    active BOOLEAN NOT NULL DEFAULT TRUE,

    harvest_date DATE,
    delivery_date DATE,

    billing_period VARCHAR(20),
    billing_period_start DATE,
    billing_period_end DATE,

    packaging JSONB,

    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (is_recurring = (parent_id IS NULL) OR NOT is_recurring)
);

-- One generated order per (template, delivery date)
CREATE UNIQUE INDEX IF NOT EXISTS orders_template_delivery_uniq
    ON orders (parent_id, delivery_date)
    WHERE parent_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS order_items (
    order_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    order_id UUID NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
    product VARCHAR(100) NOT NULL,
    variation VARCHAR(100),
    grams DOUBLE PRECISION NOT NULL,
    price DOUBLE PRECISION NOT NULL DEFAULT 0
);

-- Crop plans: one row per (recipe, harvest date); sibling orders aggregate

CREATE TABLE IF NOT EXISTS crop_plans (
    plan_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    recipe_id UUID NOT NULL REFERENCES recipes(recipe_id),
    harvest_date DATE NOT NULL,
    grams_needed DOUBLE PRECISION NOT NULL DEFAULT 0,
    trays_needed INTEGER NOT NULL DEFAULT 0,
    plant_by_date TIMESTAMPTZ NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'planned',
    order_ids UUID[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (recipe_id, harvest_date)
);

-- Crops: tray instances realizing a plan

CREATE TABLE IF NOT EXISTS crops (
    crop_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    plan_id UUID NOT NULL REFERENCES crop_plans(plan_id) ON DELETE CASCADE,
    recipe_id UUID NOT NULL REFERENCES recipes(recipe_id),
    tray_number INTEGER NOT NULL DEFAULT 1,
    current_stage VARCHAR(20) NOT NULL,
    stage_entered_at JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Task schedules: at most one active schedule per crop

CREATE TABLE IF NOT EXISTS task_schedules (
    task_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    resource_type VARCHAR(20) NOT NULL,
    crop_id UUID REFERENCES crops(crop_id) ON DELETE CASCADE,
    next_run_at TIMESTAMPTZ NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    condition JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS task_schedules_crop_active_uniq
    ON task_schedules (crop_id)
    WHERE crop_id IS NOT NULL AND active;
`
